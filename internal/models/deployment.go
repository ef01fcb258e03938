package models

import "time"

type DeploymentStatus string

const (
	DeploymentDispatched DeploymentStatus = "dispatched"
	DeploymentInTransit  DeploymentStatus = "in_transit"
	DeploymentArrived    DeploymentStatus = "arrived"
	DeploymentDeployed   DeploymentStatus = "deployed"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
)

// Deployment commits a quantity of one resource category to a target
// region in response to a prediction. Deployments are unique per
// (prediction, resource type) pair and are not mutated after creation.
type Deployment struct {
	ID           string           `json:"id"`
	PredictionID string           `json:"prediction_id"`
	ResourceType ResourceType     `json:"resource_type"`
	Quantity     int              `json:"quantity"`
	TargetRegion string           `json:"target_region"`
	Status       DeploymentStatus `json:"status"`
	ETAHours     int              `json:"eta_hours"`
	Priority     Priority         `json:"priority"`
	CreatedAt    time.Time        `json:"created_at"`
}
