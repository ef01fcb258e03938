// Package allocation decides which resources to deploy in response to
// a disaster prediction and records the deployments while decrementing
// inventory, all inside a single transaction.
package allocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/lifeguard-ai/lifeguard-backend/internal/id"
	"github.com/lifeguard-ai/lifeguard-backend/internal/metrics"
	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
	"github.com/lifeguard-ai/lifeguard-backend/internal/repository"
)

type Tier string

const (
	TierCritical Tier = "critical"
	TierStandard Tier = "standard"
)

// tierResources maps a severity tier to the resource categories
// eligible for deployment. Kept as a table so tiers can grow without
// touching the engine.
var tierResources = map[Tier][]models.ResourceType{
	TierCritical: {
		models.ResourceAmbulances,
		models.ResourceMedicalTeams,
		models.ResourceOxygenCylinders,
	},
	TierStandard: {
		models.ResourceReliefKits,
	},
}

func tierFor(severity int) Tier {
	if severity >= models.CriticalSeverityThreshold {
		return TierCritical
	}
	return TierStandard
}

type Engine struct {
	store repository.Transactor
	clock clockwork.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine builds an allocation engine. The rng drives deployment ETA
// assignment and is injected so tests can seed it.
func NewEngine(store repository.Transactor, clock clockwork.Clock, rng *rand.Rand) *Engine {
	return &Engine{
		store: store,
		clock: clock,
		rng:   rng,
	}
}

// Allocate selects resource categories by the prediction's severity
// tier, computes deployment quantities and commits the decrements and
// deployment rows as one unit.
//
// Categories with no stock or no inventory row are skipped silently.
// Categories already deployed for this prediction are skipped as well,
// so repeating a call cannot double-allocate. Returns only the
// deployments created by this call.
func (e *Engine) Allocate(ctx context.Context, predictionID string) ([]models.Deployment, error) {
	var created []models.Deployment

	err := e.store.Allocation(ctx, func(s repository.AllocationStore) error {
		p, err := s.GetPrediction(ctx, predictionID)
		if err != nil {
			return err
		}

		tier := tierFor(p.Severity)
		for _, rt := range tierResources[tier] {
			exists, err := s.DeploymentExists(ctx, p.ID, rt)
			if err != nil {
				return err
			}
			if exists {
				slog.Debug("already deployed for prediction, skipping",
					"prediction", p.ID, "resource", rt)
				continue
			}

			r, err := s.GetResource(ctx, rt)
			if errors.Is(err, models.ErrNotFound) {
				slog.Warn("no inventory row for resource, skipping", "resource", rt)
				continue
			}
			if err != nil {
				return err
			}
			if r.Available == 0 {
				continue
			}

			qty := r.Available
			if want := p.AffectedPopulation/1000 + 1; want < qty {
				qty = want
			}

			ok, err := s.DecrementResource(ctx, rt, qty)
			if err != nil {
				return err
			}
			if !ok {
				// A concurrent allocation drained the stock between the
				// read and the decrement.
				continue
			}

			d := models.Deployment{
				ID:           id.Deployment(),
				PredictionID: p.ID,
				ResourceType: rt,
				Quantity:     qty,
				TargetRegion: p.Region,
				Status:       models.DeploymentDispatched,
				ETAHours:     e.etaHours(),
				Priority:     priorityFor(tier),
				CreatedAt:    e.clock.Now(),
			}
			if err := s.AddDeployment(ctx, &d); err != nil {
				return fmt.Errorf("error recording deployment: %w", err)
			}
			created = append(created, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AllocationsTotal.Inc()
	for _, d := range created {
		metrics.DeploymentsCreatedTotal.WithLabelValues(string(d.ResourceType)).Inc()
		slog.Info("deployment created", "id", d.ID, "resource", d.ResourceType,
			"quantity", d.Quantity, "region", d.TargetRegion, "eta_hours", d.ETAHours)
	}

	return created, nil
}

func priorityFor(tier Tier) models.Priority {
	if tier == TierCritical {
		return models.PriorityCritical
	}
	return models.PriorityHigh
}

// etaHours draws a dispatch ETA in [1, 12] hours.
func (e *Engine) etaHours() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(12) + 1
}
