package prediction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
	"github.com/lifeguard-ai/lifeguard-backend/internal/repository"
)

// SeedStore is the subset of the repository used for first-run
// seeding.
type SeedStore interface {
	repository.ResourceRepository
	repository.PredictionRepository
	repository.HospitalRepository
}

var seedResources = []models.Resource{
	{Type: models.ResourceAmbulances, Total: 15000, Available: 12500},
	{Type: models.ResourceHospitalBeds, Total: 1850000, Available: 980000},
	{Type: models.ResourceICUBeds, Total: 95000, Available: 45000},
	{Type: models.ResourceVentilators, Total: 48000, Available: 28000},
	{Type: models.ResourceBloodUnits, Total: 500000, Available: 420000},
	{Type: models.ResourceMedicalTeams, Total: 5000, Available: 3500},
	{Type: models.ResourceReliefKits, Total: 2000000, Available: 1500000},
	{Type: models.ResourceOxygenCylinders, Total: 250000, Available: 180000},
}

var seedHospitals = []models.Hospital{
	{Name: "AIIMS Delhi", Region: "Delhi", Latitude: 28.5672, Longitude: 77.2100,
		TotalBeds: 2500, AvailableBeds: 400, TotalICU: 250, AvailableICU: 42, Ventilators: 30},
	{Name: "Apollo Chennai", Region: "Tamil Nadu", Latitude: 13.0607, Longitude: 80.2511,
		TotalBeds: 1500, AvailableBeds: 200, TotalICU: 150, AvailableICU: 8, Ventilators: 15},
	{Name: "Tata Memorial Mumbai", Region: "Maharashtra", Latitude: 19.0031, Longitude: 72.8406,
		TotalBeds: 1000, AvailableBeds: 150, TotalICU: 100, AvailableICU: 12, Ventilators: 10},
}

// Seed populates resources, hospitals and an initial prediction batch
// when the resources table is empty. Safe to call on every start.
func Seed(ctx context.Context, store SeedStore, gen Generator) error {
	existing, err := store.ListResources(ctx)
	if err != nil {
		return fmt.Errorf("error checking resources: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for i := range seedResources {
		if err := store.UpsertResource(ctx, &seedResources[i]); err != nil {
			return fmt.Errorf("error seeding resource %s: %w", seedResources[i].Type, err)
		}
	}
	for i := range seedHospitals {
		h := seedHospitals[i]
		if err := store.AddHospital(ctx, &h); err != nil {
			return fmt.Errorf("error seeding hospital %s: %w", h.Name, err)
		}
	}

	preds := gen.Generate()
	for i := range preds {
		if err := store.AddPrediction(ctx, &preds[i]); err != nil {
			return fmt.Errorf("error seeding prediction: %w", err)
		}
	}

	slog.Info("seeded initial data",
		"resources", len(seedResources), "hospitals", len(seedHospitals), "predictions", len(preds))
	return nil
}
