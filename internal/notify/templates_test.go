package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTemplate_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	got := resolveTemplate("xx", "flood")
	assert.Equal(t, smsTemplates["en"]["flood"], got)
}

func TestResolveTemplate_UnknownCategoryFallsBackToCyclone(t *testing.T) {
	// Tamil has no "meteor" template; fall back to Tamil cyclone, not
	// to English.
	got := resolveTemplate("ta", "meteor")
	assert.Equal(t, smsTemplates["ta"]["cyclone"], got)
}

func TestResolveTemplate_UntranslatedCategoryStaysInLanguage(t *testing.T) {
	// Tamil has no earthquake translation either; the chain resolves
	// within the Tamil table.
	got := resolveTemplate("ta", "earthquake")
	assert.Equal(t, smsTemplates["ta"]["cyclone"], got)
}

func TestResolveTemplate_ExactMatch(t *testing.T) {
	got := resolveTemplate("hi", "flood")
	assert.Equal(t, smsTemplates["hi"]["flood"], got)
}

func TestResolveTemplate_DoubleFallback(t *testing.T) {
	got := resolveTemplate("xx", "meteor")
	assert.Equal(t, smsTemplates["en"]["cyclone"], got)
}

func TestSubstitute_AllVarsPresent(t *testing.T) {
	got := substitute("ALERT for {region}, severity {severity}/5", map[string]string{
		"region":   "Kerala",
		"severity": "4",
	})
	assert.Equal(t, "ALERT for Kerala, severity 4/5", got)
}

func TestSubstitute_MissingVarReturnsRawTemplate(t *testing.T) {
	tmpl := "ALERT for {region}, severity {severity}/5"
	got := substitute(tmpl, map[string]string{"region": "Kerala"})
	assert.Equal(t, tmpl, got)
}

func TestSubstitute_NoPlaceholders(t *testing.T) {
	got := substitute("static message", nil)
	assert.Equal(t, "static message", got)
}

func TestEnglishTableCoversAllCategories(t *testing.T) {
	for _, category := range []string{
		"cyclone", "flood", "earthquake", "heatwave",
		"landslide", "drought", "tsunami", CategoryBloodDonor,
	} {
		tmpl, ok := smsTemplates["en"][category]
		assert.True(t, ok, "missing English template for %s", category)
		assert.False(t, strings.TrimSpace(tmpl) == "", "empty English template for %s", category)
	}
}
