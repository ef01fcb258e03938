package models

import "time"

type DisasterType string

const (
	DisasterTypeCyclone    DisasterType = "cyclone"
	DisasterTypeFlood      DisasterType = "flood"
	DisasterTypeEarthquake DisasterType = "earthquake"
	DisasterTypeHeatwave   DisasterType = "heatwave"
	DisasterTypeLandslide  DisasterType = "landslide"
	DisasterTypeDrought    DisasterType = "drought"
	DisasterTypeTsunami    DisasterType = "tsunami"
)

// Prediction is a forecast disaster event for one region. Rows are
// immutable once stored; they are produced by a prediction generator
// or an external model, never updated in place.
type Prediction struct {
	ID                 string
	DisasterType       DisasterType
	Region             string
	Confidence         float64 // 0..1
	Latitude           float64
	Longitude          float64
	RadiusKM           float64
	PredictedOnset     time.Time
	Severity           int // 1-5
	AffectedPopulation int
	Explanation        string
	CreatedAt          time.Time
}

// Critical reports whether the prediction falls in the critical
// severity tier (severity >= 4).
func (p *Prediction) Critical() bool {
	return p.Severity >= CriticalSeverityThreshold
}

// CriticalSeverityThreshold splits predictions into the critical and
// standard allocation tiers.
const CriticalSeverityThreshold = 4

func ParseDisasterType(s string) (DisasterType, bool) {
	switch DisasterType(s) {
	case DisasterTypeCyclone, DisasterTypeFlood, DisasterTypeEarthquake,
		DisasterTypeHeatwave, DisasterTypeLandslide, DisasterTypeDrought,
		DisasterTypeTsunami:
		return DisasterType(s), true
	}
	return "", false
}
