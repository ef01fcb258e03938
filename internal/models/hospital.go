package models

// Hospital tracks bed and ICU capacity for readiness scoring.
type Hospital struct {
	ID            int64
	Name          string
	Region        string
	Latitude      float64
	Longitude     float64
	TotalBeds     int
	AvailableBeds int
	TotalICU      int
	AvailableICU  int
	Ventilators   int
}

// ReadinessScore weights general bed availability over ICU
// availability (70/30). Returns 0 when capacity figures are missing.
func (h *Hospital) ReadinessScore() float64 {
	if h.TotalBeds <= 0 || h.TotalICU <= 0 {
		return 0
	}
	return float64(h.AvailableBeds)/float64(h.TotalBeds)*0.7 +
		float64(h.AvailableICU)/float64(h.TotalICU)*0.3
}

// ReadinessStatus buckets the score: Ready > 0.6, Busy > 0.2,
// Critical otherwise.
func (h *Hospital) ReadinessStatus() string {
	score := h.ReadinessScore()
	switch {
	case score > 0.6:
		return "Ready"
	case score > 0.2:
		return "Busy"
	default:
		return "Critical"
	}
}
