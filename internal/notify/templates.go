package notify

import (
	"regexp"
	"strings"
)

// CategoryBloodDonor is the one non-disaster message category.
const CategoryBloodDonor = "blood_donor"

// fallbackLanguage and fallbackCategory anchor the two-level template
// resolution chain: unknown language falls back to English, unknown
// category falls back to the cyclone template of the chosen language.
const (
	fallbackLanguage = "en"
	fallbackCategory = "cyclone"
)

// smsTemplates holds localized alert bodies keyed by language, then
// category. The English table is complete; other languages carry the
// subset that has been translated so far.
var smsTemplates = map[string]map[string]string{
	"en": {
		"cyclone":     "EMERGENCY: Cyclone warning for {region}. Severity: {severity}/5. Please evacuate to nearest shelter.",
		"flood":       "WARNING: Flood risk in {region}. Stay away from river banks and move to higher ground.",
		"earthquake":  "ALERT: Earthquake detected in {region}. Drop, Cover, and Hold on. Follow local instructions.",
		"heatwave":    "ADVISORY: Severe heatwave in {region}. Stay hydrated and avoid outdoor activities.",
		"landslide":   "WARNING: Landslide risk in {region}. Evacuate vulnerable slopes immediately.",
		"drought":     "ADVISORY: Drought conditions in {region}. Please conserve water.",
		"tsunami":     "CRITICAL: Tsunami warning for coastal {region}. Move inland to high ground immediately.",
		"blood_donor": "URGENT: {blood_type} blood needed in {region} due to {disaster}. Please visit {phone} center.",
	},
	"hi": {
		"cyclone":     "आपातकाल: {region} के लिए चक्रवात की चेतावनी। तीव्रता: {severity}/5. कृपया निकटतम आश्रय में जाएं।",
		"flood":       "चेतावनी: {region} में बाढ़ का खतरा। नदी तटों से दूर रहें और ऊंचाई पर जाएं।",
		"earthquake":  "अलर्ट: {region} में भूकंप। झुकें, ढंकें और पकड़ें। स्थानीय निर्देशों का पालन करें।",
		"heatwave":    "सलाह: {region} में भीषण लू। हाइड्रेटेड रहें और बाहरी गतिविधियों से बचें।",
		"blood_donor": "अत्यंत आवश्यक: {disaster} के कारण {region} में {blood_type} रक्त की आवश्यकता है। कृपया {phone} केंद्र पर जाएं।",
	},
	"ta": {
		"cyclone":     "அவசரநிலை: {region} புயல் எச்சரிக்கை. தீவிரம்: {severity}/5. அருகிலுள்ள தங்குமிடத்திற்குச் செல்லவும்.",
		"flood":       "எச்சரிக்கை: {region} இல் வெள்ள அபாயம். ஆற்றங்கரையில் இருந்து விலகி உயரமான இடத்திற்குச் செல்லவும்.",
		"blood_donor": "அவசரம்: {disaster} காரணமாக {region} இல் {blood_type} ரத்தம் தேவைப்படுகிறது. {phone} மையத்திற்கு வரவும்.",
	},
}

// resolveTemplate applies the fallback chain. Precedence:
//
//  1. exact (language, category)
//  2. (language, "cyclone") when the category is untranslated
//  3. ("en", category), then ("en", "cyclone")
func resolveTemplate(language, category string) string {
	table, ok := smsTemplates[language]
	if !ok {
		table = smsTemplates[fallbackLanguage]
	}
	if tmpl, ok := table[category]; ok {
		return tmpl
	}
	return table[fallbackCategory]
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// substitute fills {name} placeholders from vars. If any placeholder
// has no value the template is returned untouched; a partially filled
// alert reads worse than the raw template, and a send must never fail
// on formatting.
func substitute(tmpl string, vars map[string]string) string {
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		if _, ok := vars[m[1]]; !ok {
			return tmpl
		}
	}
	out := tmpl
	for name, val := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", val)
	}
	return out
}
