// Package prediction produces synthetic disaster predictions over the
// Indian region catalog. There is no real model behind it; the
// generator is a strategy interface so a trained model can replace the
// random one without touching callers.
package prediction

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lifeguard-ai/lifeguard-backend/internal/id"
	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
)

type Generator interface {
	Generate() []models.Prediction
}

// RandomGenerator draws predictions from an injected pseudo-random
// source so outputs are reproducible under a fixed seed.
type RandomGenerator struct {
	clock clockwork.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomGenerator(seed int64, clock clockwork.Clock) *RandomGenerator {
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return &RandomGenerator{
		clock: clock,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

var disasterTypes = []models.DisasterType{
	models.DisasterTypeCyclone,
	models.DisasterTypeFlood,
	models.DisasterTypeEarthquake,
	models.DisasterTypeHeatwave,
	models.DisasterTypeLandslide,
	models.DisasterTypeDrought,
	models.DisasterTypeTsunami,
}

// Generate picks 3-6 distinct regions and forecasts one disaster for
// each, ordered by predicted onset.
func (g *RandomGenerator) Generate() []models.Prediction {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	count := 3 + g.rng.Intn(4)
	perm := g.rng.Perm(len(Regions))

	preds := make([]models.Prediction, 0, count)
	for _, idx := range perm[:count] {
		region := Regions[idx]
		dt := disasterTypes[g.rng.Intn(len(disasterTypes))]
		profile := disasterProfiles[dt]
		severity := profile.MinSeverity + g.rng.Intn(profile.MaxSeverity-profile.MinSeverity+1)
		hoursUntil := 6 + g.rng.Intn(67) // 6-72h

		preds = append(preds, models.Prediction{
			ID:                 id.Prediction(),
			DisasterType:       dt,
			Region:             region.Name,
			Confidence:         0.75 + g.rng.Float64()*0.23,
			Latitude:           region.Latitude,
			Longitude:          region.Longitude,
			RadiusKM:           50,
			PredictedOnset:     now.Add(time.Duration(hoursUntil) * time.Hour),
			Severity:           severity,
			AffectedPopulation: region.Population / (5 + g.rng.Intn(16)),
			Explanation:        fmt.Sprintf("Potential %s risk detected based on climate models.", dt),
			CreatedAt:          now,
		})
	}

	sort.Slice(preds, func(i, j int) bool {
		return preds[i].PredictedOnset.Before(preds[j].PredictedOnset)
	})
	return preds
}
