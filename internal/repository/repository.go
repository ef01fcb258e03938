package repository

import (
	"context"

	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
)

type PredictionFilter struct {
	Limit       int
	Type        *models.DisasterType
	MinSeverity *int
	Region      *string
}

type PredictionRepository interface {
	AddPrediction(ctx context.Context, p *models.Prediction) error
	GetPrediction(ctx context.Context, id string) (*models.Prediction, error)
	ListPredictions(ctx context.Context, opts PredictionFilter) ([]models.Prediction, error)
}

type ResourceRepository interface {
	UpsertResource(ctx context.Context, r *models.Resource) error
	GetResource(ctx context.Context, rt models.ResourceType) (*models.Resource, error)
	ListResources(ctx context.Context) ([]models.Resource, error)
}

type DeploymentRepository interface {
	AddDeployment(ctx context.Context, d *models.Deployment) error
	DeploymentExists(ctx context.Context, predictionID string, rt models.ResourceType) (bool, error)
	ListRecentDeployments(ctx context.Context, limit int) ([]models.Deployment, error)
}

type AlertRepository interface {
	AddAlert(ctx context.Context, a *models.Alert) error
	ListRecentAlerts(ctx context.Context, limit int) ([]models.Alert, error)
}

type HospitalRepository interface {
	AddHospital(ctx context.Context, h *models.Hospital) error
	ListHospitals(ctx context.Context, region string) ([]models.Hospital, error)
}

type UserRepository interface {
	AddUser(ctx context.Context, u *models.User) error
	ListUsersByRegion(ctx context.Context, region string) ([]models.User, error)
}

// AllocationStore is the persistence contract of a single allocation
// call: read the prediction and inventory, decrement atomically,
// record deployments. All methods run against the same transaction.
type AllocationStore interface {
	GetPrediction(ctx context.Context, id string) (*models.Prediction, error)
	GetResource(ctx context.Context, rt models.ResourceType) (*models.Resource, error)
	// DecrementResource subtracts qty from the available quantity of rt
	// only if at least qty is on hand. Returns false when the guard
	// fails (insufficient stock or a concurrent writer won the race).
	DecrementResource(ctx context.Context, rt models.ResourceType, qty int) (bool, error)
	AddDeployment(ctx context.Context, d *models.Deployment) error
	DeploymentExists(ctx context.Context, predictionID string, rt models.ResourceType) (bool, error)
}

// Transactor runs fn against an AllocationStore inside a single
// transaction; fn returning an error rolls everything back.
type Transactor interface {
	Allocation(ctx context.Context, fn func(AllocationStore) error) error
}
