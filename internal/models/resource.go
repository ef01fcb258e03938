package models

type ResourceType string

const (
	ResourceAmbulances      ResourceType = "ambulances"
	ResourceHospitalBeds    ResourceType = "hospital_beds"
	ResourceICUBeds         ResourceType = "icu_beds"
	ResourceVentilators     ResourceType = "ventilators"
	ResourceBloodUnits      ResourceType = "blood_units"
	ResourceMedicalTeams    ResourceType = "medical_teams"
	ResourceReliefKits      ResourceType = "relief_kits"
	ResourceOxygenCylinders ResourceType = "oxygen_cylinders"
)

// Resource is a national inventory row for one resource category.
// Invariant: 0 <= Available <= Total. Available is mutated only by the
// allocation engine's compare-and-set decrement.
type Resource struct {
	Type      ResourceType
	Total     int
	Available int
}
