package prediction

import "github.com/lifeguard-ai/lifeguard-backend/internal/models"

// Region is one entry in the static catalog of monitored Indian
// states, with census population and registered hospital counts.
type Region struct {
	Name       string  `json:"name"`
	Latitude   float64 `json:"lat"`
	Longitude  float64 `json:"lng"`
	Population int     `json:"population"`
	Hospitals  int     `json:"hospitals"`
}

var Regions = []Region{
	{Name: "Maharashtra", Latitude: 19.7515, Longitude: 75.7139, Population: 112374333, Hospitals: 4823},
	{Name: "Tamil Nadu", Latitude: 11.1271, Longitude: 78.6569, Population: 72147030, Hospitals: 3456},
	{Name: "Gujarat", Latitude: 22.2587, Longitude: 71.1924, Population: 60439692, Hospitals: 2890},
	{Name: "Kerala", Latitude: 10.8505, Longitude: 76.2711, Population: 33406061, Hospitals: 2134},
	{Name: "West Bengal", Latitude: 22.9868, Longitude: 87.8550, Population: 91276115, Hospitals: 3678},
	{Name: "Karnataka", Latitude: 15.3173, Longitude: 75.7139, Population: 61095297, Hospitals: 2987},
	{Name: "Andhra Pradesh", Latitude: 15.9129, Longitude: 79.7400, Population: 49577103, Hospitals: 2456},
	{Name: "Rajasthan", Latitude: 27.0238, Longitude: 74.2179, Population: 68548437, Hospitals: 2123},
	{Name: "Uttar Pradesh", Latitude: 26.8467, Longitude: 80.9462, Population: 199812341, Hospitals: 5678},
	{Name: "Madhya Pradesh", Latitude: 22.9734, Longitude: 78.6569, Population: 72626809, Hospitals: 2345},
	{Name: "Odisha", Latitude: 20.9517, Longitude: 85.0985, Population: 41974218, Hospitals: 1987},
	{Name: "Bihar", Latitude: 25.0961, Longitude: 85.3131, Population: 104099452, Hospitals: 2890},
	{Name: "Assam", Latitude: 26.2006, Longitude: 92.9376, Population: 31205576, Hospitals: 1234},
	{Name: "Punjab", Latitude: 31.1471, Longitude: 75.3412, Population: 27743338, Hospitals: 1567},
	{Name: "Telangana", Latitude: 18.1124, Longitude: 79.0193, Population: 35003674, Hospitals: 2123},
}

type disasterProfile struct {
	MinSeverity     int
	MaxSeverity     int
	Recommendations []string
}

var disasterProfiles = map[models.DisasterType]disasterProfile{
	models.DisasterTypeCyclone: {3, 5, []string{
		"Deploy coastal evacuation teams immediately",
		"Pre-position relief materials at district headquarters",
		"Alert all fishing vessels to return to shore",
		"Activate emergency shelters in vulnerable zones",
	}},
	models.DisasterTypeFlood: {2, 5, []string{
		"Pre-deploy rescue boats and water pumps",
		"Establish temporary medical camps on elevated ground",
		"Stock essential medicines for waterborne diseases",
		"Coordinate with NDRF teams for immediate deployment",
	}},
	models.DisasterTypeEarthquake: {3, 5, []string{
		"Alert structural assessment teams",
		"Pre-position heavy rescue equipment",
		"Prepare trauma care units at nearby hospitals",
		"Activate urban search and rescue protocols",
	}},
	models.DisasterTypeHeatwave: {2, 4, []string{
		"Set up cooling centers in affected areas",
		"Distribute ORS packets and water supplies",
		"Alert hospitals for heat stroke cases",
		"Deploy mobile medical units",
	}},
	models.DisasterTypeLandslide: {2, 4, []string{
		"Evacuate populations in vulnerable hill zones",
		"Pre-deploy earth-moving equipment",
		"Set up triage centers near access points",
		"Coordinate helicopter rescue teams",
	}},
	models.DisasterTypeDrought: {2, 4, []string{
		"Activate water tanker distribution",
		"Set up nutrition centers for vulnerable populations",
		"Deploy agricultural relief teams",
		"Stock fodder for livestock",
	}},
	models.DisasterTypeTsunami: {4, 5, []string{
		"Immediate coastal evacuation",
		"Deploy all available naval rescue assets",
		"Prepare mass casualty protocols",
		"Activate international assistance requests",
	}},
}

// Recommendations returns the response playbook for a disaster type.
func Recommendations(dt models.DisasterType) []string {
	return disasterProfiles[dt].Recommendations
}
