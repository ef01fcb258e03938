package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same CRUD
// code serves direct calls and allocation transactions.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type store struct {
	q querier
}

func (s *store) AddPrediction(ctx context.Context, p *models.Prediction) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO predictions (id, disaster_type, region, confidence, latitude, longitude,
			radius_km, predicted_onset, severity, affected_population, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, string(p.DisasterType), p.Region, p.Confidence, p.Latitude, p.Longitude,
		p.RadiusKM, p.PredictedOnset, p.Severity, p.AffectedPopulation, p.Explanation, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting prediction: %w", err)
	}
	return nil
}

func (s *store) GetPrediction(ctx context.Context, id string) (*models.Prediction, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, disaster_type, region, confidence, latitude, longitude,
			radius_km, predicted_onset, severity, affected_population, explanation, created_at
		FROM predictions WHERE id = ?`, id)

	var p models.Prediction
	var dt string
	err := row.Scan(&p.ID, &dt, &p.Region, &p.Confidence, &p.Latitude, &p.Longitude,
		&p.RadiusKM, &p.PredictedOnset, &p.Severity, &p.AffectedPopulation, &p.Explanation, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prediction %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning prediction: %w", err)
	}
	p.DisasterType = models.DisasterType(dt)
	return &p, nil
}

func (s *store) ListPredictions(ctx context.Context, opts PredictionFilter) ([]models.Prediction, error) {
	query := `
		SELECT id, disaster_type, region, confidence, latitude, longitude,
			radius_km, predicted_onset, severity, affected_population, explanation, created_at
		FROM predictions WHERE 1=1`
	args := []any{}

	if opts.Type != nil {
		query += " AND disaster_type = ?"
		args = append(args, string(*opts.Type))
	}
	if opts.MinSeverity != nil {
		query += " AND severity >= ?"
		args = append(args, *opts.MinSeverity)
	}
	if opts.Region != nil {
		query += " AND region = ?"
		args = append(args, *opts.Region)
	}
	query += " ORDER BY predicted_onset ASC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing predictions: %w", err)
	}
	defer rows.Close()

	var preds []models.Prediction
	for rows.Next() {
		var p models.Prediction
		var dt string
		if err := rows.Scan(&p.ID, &dt, &p.Region, &p.Confidence, &p.Latitude, &p.Longitude,
			&p.RadiusKM, &p.PredictedOnset, &p.Severity, &p.AffectedPopulation, &p.Explanation, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning prediction row: %w", err)
		}
		p.DisasterType = models.DisasterType(dt)
		preds = append(preds, p)
	}
	return preds, rows.Err()
}

func (s *store) UpsertResource(ctx context.Context, r *models.Resource) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO resources (resource_type, total_quantity, available_quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (resource_type) DO UPDATE SET
			total_quantity = excluded.total_quantity,
			available_quantity = excluded.available_quantity`,
		string(r.Type), r.Total, r.Available,
	)
	if err != nil {
		return fmt.Errorf("error upserting resource: %w", err)
	}
	return nil
}

func (s *store) GetResource(ctx context.Context, rt models.ResourceType) (*models.Resource, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT resource_type, total_quantity, available_quantity
		FROM resources WHERE resource_type = ?`, string(rt))

	var r models.Resource
	var t string
	err := row.Scan(&t, &r.Total, &r.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resource %s: %w", rt, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning resource: %w", err)
	}
	r.Type = models.ResourceType(t)
	return &r, nil
}

func (s *store) ListResources(ctx context.Context) ([]models.Resource, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT resource_type, total_quantity, available_quantity
		FROM resources ORDER BY resource_type`)
	if err != nil {
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		var r models.Resource
		var t string
		if err := rows.Scan(&t, &r.Total, &r.Available); err != nil {
			return nil, fmt.Errorf("error scanning resource row: %w", err)
		}
		r.Type = models.ResourceType(t)
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

func (s *store) DecrementResource(ctx context.Context, rt models.ResourceType, qty int) (bool, error) {
	res, err := s.q.ExecContext(ctx, `
		UPDATE resources
		SET available_quantity = available_quantity - ?
		WHERE resource_type = ? AND available_quantity >= ?`,
		qty, string(rt), qty,
	)
	if err != nil {
		return false, fmt.Errorf("error decrementing resource: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *store) AddDeployment(ctx context.Context, d *models.Deployment) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO deployments (id, prediction_id, resource_type, quantity, target_region,
			status, eta_hours, priority, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.PredictionID, string(d.ResourceType), d.Quantity, d.TargetRegion,
		string(d.Status), d.ETAHours, string(d.Priority), d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting deployment: %w", err)
	}
	return nil
}

func (s *store) DeploymentExists(ctx context.Context, predictionID string, rt models.ResourceType) (bool, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM deployments WHERE prediction_id = ? AND resource_type = ?`,
		predictionID, string(rt))

	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("error checking deployment existence: %w", err)
	}
	return n > 0, nil
}

func (s *store) ListRecentDeployments(ctx context.Context, limit int) ([]models.Deployment, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, prediction_id, resource_type, quantity, target_region,
			status, eta_hours, priority, created_at
		FROM deployments ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing deployments: %w", err)
	}
	defer rows.Close()

	var deployments []models.Deployment
	for rows.Next() {
		var d models.Deployment
		var rt, status, priority string
		if err := rows.Scan(&d.ID, &d.PredictionID, &rt, &d.Quantity, &d.TargetRegion,
			&status, &d.ETAHours, &priority, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning deployment row: %w", err)
		}
		d.ResourceType = models.ResourceType(rt)
		d.Status = models.DeploymentStatus(status)
		d.Priority = models.Priority(priority)
		deployments = append(deployments, d)
	}
	return deployments, rows.Err()
}

func (s *store) AddAlert(ctx context.Context, a *models.Alert) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO alerts (id, prediction_id, phone, alert_type, message, language, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.PredictionID, a.Phone, string(a.Type), a.Message, a.Language, a.Status, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting alert: %w", err)
	}
	return nil
}

func (s *store) ListRecentAlerts(ctx context.Context, limit int) ([]models.Alert, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, prediction_id, phone, alert_type, message, language, status, created_at
		FROM alerts ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		var at string
		if err := rows.Scan(&a.ID, &a.PredictionID, &a.Phone, &at, &a.Message,
			&a.Language, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning alert row: %w", err)
		}
		a.Type = models.AlertType(at)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *store) AddHospital(ctx context.Context, h *models.Hospital) error {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO hospitals (name, region, latitude, longitude, total_beds,
			available_beds, total_icu, available_icu, ventilators)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.Name, h.Region, h.Latitude, h.Longitude, h.TotalBeds,
		h.AvailableBeds, h.TotalICU, h.AvailableICU, h.Ventilators,
	)
	if err != nil {
		return fmt.Errorf("error inserting hospital: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		h.ID = id
	}
	return nil
}

func (s *store) ListHospitals(ctx context.Context, region string) ([]models.Hospital, error) {
	query := `
		SELECT id, name, region, latitude, longitude, total_beds,
			available_beds, total_icu, available_icu, ventilators
		FROM hospitals`
	args := []any{}
	if region != "" {
		query += " WHERE region = ?"
		args = append(args, region)
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing hospitals: %w", err)
	}
	defer rows.Close()

	var hospitals []models.Hospital
	for rows.Next() {
		var h models.Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.Region, &h.Latitude, &h.Longitude,
			&h.TotalBeds, &h.AvailableBeds, &h.TotalICU, &h.AvailableICU, &h.Ventilators); err != nil {
			return nil, fmt.Errorf("error scanning hospital row: %w", err)
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, rows.Err()
}

func (s *store) AddUser(ctx context.Context, u *models.User) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO users (id, role, phone, language, region, blood_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, string(u.Role), u.Phone, u.Language, u.Region, u.BloodType, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (s *store) ListUsersByRegion(ctx context.Context, region string) ([]models.User, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, role, phone, language, region, blood_type, created_at
		FROM users WHERE region = ?`, region)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &role, &u.Phone, &u.Language, &u.Region,
			&u.BloodType, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		u.Role = models.UserRole(role)
		users = append(users, u)
	}
	return users, rows.Err()
}
