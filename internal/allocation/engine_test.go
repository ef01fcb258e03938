package allocation

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
	"github.com/lifeguard-ai/lifeguard-backend/internal/repository"
)

func newTestEngine(t *testing.T) (*Engine, *repository.SQLiteDB) {
	t.Helper()
	db, err := repository.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := clockwork.NewFakeClockAt(time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC))
	return NewEngine(db, clock, rand.New(rand.NewSource(42))), db
}

func seedPrediction(t *testing.T, db *repository.SQLiteDB, id string, severity, population int) {
	t.Helper()
	err := db.AddPrediction(context.Background(), &models.Prediction{
		ID:                 id,
		DisasterType:       models.DisasterTypeCyclone,
		Region:             "Odisha",
		Confidence:         0.9,
		PredictedOnset:     time.Now().Add(24 * time.Hour),
		Severity:           severity,
		AffectedPopulation: population,
		CreatedAt:          time.Now(),
	})
	require.NoError(t, err)
}

func seedResource(t *testing.T, db *repository.SQLiteDB, rt models.ResourceType, total, available int) {
	t.Helper()
	err := db.UpsertResource(context.Background(), &models.Resource{Type: rt, Total: total, Available: available})
	require.NoError(t, err)
}

func TestAllocate_CriticalTier(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	seedPrediction(t, db, "PRED-1", 5, 50000)
	seedResource(t, db, models.ResourceAmbulances, 15000, 100)
	seedResource(t, db, models.ResourceMedicalTeams, 5000, 3500)
	seedResource(t, db, models.ResourceOxygenCylinders, 250000, 180000)
	seedResource(t, db, models.ResourceReliefKits, 2000000, 1500000)

	deployments, err := engine.Allocate(ctx, "PRED-1")
	require.NoError(t, err)
	require.Len(t, deployments, 3)

	critical := map[models.ResourceType]bool{
		models.ResourceAmbulances:      true,
		models.ResourceMedicalTeams:    true,
		models.ResourceOxygenCylinders: true,
	}
	for _, d := range deployments {
		assert.True(t, critical[d.ResourceType], "unexpected resource %s in critical tier", d.ResourceType)
		assert.Equal(t, models.PriorityCritical, d.Priority)
		assert.Equal(t, models.DeploymentDispatched, d.Status)
		assert.Equal(t, "Odisha", d.TargetRegion)
		assert.GreaterOrEqual(t, d.ETAHours, 1)
		assert.LessOrEqual(t, d.ETAHours, 12)
	}

	// 50000/1000 + 1 = 51, capped by 100 ambulances available.
	amb := deploymentFor(deployments, models.ResourceAmbulances)
	require.NotNil(t, amb)
	assert.Equal(t, 51, amb.Quantity)

	r, err := db.GetResource(ctx, models.ResourceAmbulances)
	require.NoError(t, err)
	assert.Equal(t, 49, r.Available)
}

func TestAllocate_StandardTier(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	seedPrediction(t, db, "PRED-1", 3, 2500)
	seedResource(t, db, models.ResourceReliefKits, 1000, 1000)
	seedResource(t, db, models.ResourceAmbulances, 100, 100)

	deployments, err := engine.Allocate(ctx, "PRED-1")
	require.NoError(t, err)
	require.Len(t, deployments, 1)

	assert.Equal(t, models.ResourceReliefKits, deployments[0].ResourceType)
	assert.Equal(t, models.PriorityHigh, deployments[0].Priority)
	assert.Equal(t, 3, deployments[0].Quantity) // 2500/1000 + 1

	// The critical tier must stay untouched.
	r, err := db.GetResource(ctx, models.ResourceAmbulances)
	require.NoError(t, err)
	assert.Equal(t, 100, r.Available)
}

func TestAllocate_QuantityCappedByStock(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	seedPrediction(t, db, "PRED-1", 2, 9000000)
	seedResource(t, db, models.ResourceReliefKits, 100, 40)

	deployments, err := engine.Allocate(ctx, "PRED-1")
	require.NoError(t, err)
	require.Len(t, deployments, 1)
	assert.Equal(t, 40, deployments[0].Quantity)

	r, err := db.GetResource(ctx, models.ResourceReliefKits)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Available)
}

func TestAllocate_SkipsEmptyAndMissingResources(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	seedPrediction(t, db, "PRED-1", 5, 10000)
	seedResource(t, db, models.ResourceAmbulances, 100, 0)
	seedResource(t, db, models.ResourceMedicalTeams, 100, 20)
	// no oxygen_cylinders row at all

	deployments, err := engine.Allocate(ctx, "PRED-1")
	require.NoError(t, err)
	require.Len(t, deployments, 1)
	assert.Equal(t, models.ResourceMedicalTeams, deployments[0].ResourceType)

	r, err := db.GetResource(ctx, models.ResourceAmbulances)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Available)
	assert.LessOrEqual(t, r.Available, r.Total)
}

func TestAllocate_PredictionNotFound(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Allocate(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAllocate_Idempotent(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	seedPrediction(t, db, "PRED-1", 5, 4000)
	seedResource(t, db, models.ResourceAmbulances, 100, 100)
	seedResource(t, db, models.ResourceMedicalTeams, 100, 100)
	seedResource(t, db, models.ResourceOxygenCylinders, 100, 100)

	first, err := engine.Allocate(ctx, "PRED-1")
	require.NoError(t, err)
	require.Len(t, first, 3)

	// Re-running for the same prediction allocates nothing further.
	second, err := engine.Allocate(ctx, "PRED-1")
	require.NoError(t, err)
	assert.Empty(t, second)

	r, err := db.GetResource(ctx, models.ResourceAmbulances)
	require.NoError(t, err)
	assert.Equal(t, 95, r.Available) // decremented exactly once: 4000/1000+1 = 5
}

func TestAllocate_InventoryInvariant(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	seedPrediction(t, db, "PRED-1", 4, 123456)
	seedResource(t, db, models.ResourceAmbulances, 200, 150)
	seedResource(t, db, models.ResourceMedicalTeams, 50, 10)
	seedResource(t, db, models.ResourceOxygenCylinders, 500, 500)

	deployments, err := engine.Allocate(ctx, "PRED-1")
	require.NoError(t, err)

	for _, d := range deployments {
		r, err := db.GetResource(ctx, d.ResourceType)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.Available, 0)
		assert.LessOrEqual(t, r.Available, r.Total)
	}
}

func deploymentFor(deployments []models.Deployment, rt models.ResourceType) *models.Deployment {
	for i := range deployments {
		if deployments[i].ResourceType == rt {
			return &deployments[i]
		}
	}
	return nil
}
