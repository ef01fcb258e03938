// Package alerting fans disaster warnings out to the users registered
// in a prediction's target region. Sends run on a bounded worker pool;
// one recipient failing never blocks the rest.
package alerting

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/lifeguard-ai/lifeguard-backend/internal/events"
	"github.com/lifeguard-ai/lifeguard-backend/internal/id"
	"github.com/lifeguard-ai/lifeguard-backend/internal/metrics"
	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
	"github.com/lifeguard-ai/lifeguard-backend/internal/notify"
	"github.com/lifeguard-ai/lifeguard-backend/internal/repository"
	"github.com/lifeguard-ai/lifeguard-backend/internal/worker"
)

type job struct {
	prediction models.Prediction
	user       models.User
}

type Dispatcher struct {
	users  repository.UserRepository
	alerts repository.AlertRepository
	sms    *notify.Service
	feed   *events.Feed
	clock  clockwork.Clock
	pool   *worker.Pool[job]
}

func NewDispatcher(users repository.UserRepository, alerts repository.AlertRepository,
	sms *notify.Service, feed *events.Feed, clock clockwork.Clock, workers, bufferSize int) *Dispatcher {

	d := &Dispatcher{
		users:  users,
		alerts: alerts,
		sms:    sms,
		feed:   feed,
		clock:  clock,
	}
	d.pool = worker.NewPool(workers, bufferSize, d.process)
	return d
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.pool.Start(ctx)
}

func (d *Dispatcher) Stop() {
	d.pool.Stop()
}

// NotifyPrediction queues one localized alert per user registered in
// the prediction's region. Returns the number of alerts queued.
func (d *Dispatcher) NotifyPrediction(ctx context.Context, p *models.Prediction) (int, error) {
	users, err := d.users.ListUsersByRegion(ctx, p.Region)
	if err != nil {
		return 0, err
	}

	for _, u := range users {
		d.pool.Submit(job{prediction: *p, user: u})
		metrics.AlertsDispatchedTotal.Inc()
	}

	slog.Info("alerts queued", "prediction", p.ID, "region", p.Region, "recipients", len(users))
	return len(users), nil
}

func (d *Dispatcher) process(ctx context.Context, j job) error {
	res := d.sms.SendDisasterAlert(ctx, j.user.Phone,
		j.prediction.DisasterType, j.prediction.Region, j.prediction.Severity, j.user.Language)

	a := &models.Alert{
		ID:           id.Alert(),
		PredictionID: j.prediction.ID,
		Phone:        res.To,
		Type:         models.AlertTypeDisaster,
		Message:      res.Message,
		Language:     j.user.Language,
		Status:       string(res.Status),
		CreatedAt:    d.clock.Now(),
	}
	if err := d.alerts.AddAlert(ctx, a); err != nil {
		slog.Error("error recording alert", "prediction", j.prediction.ID, "error", err)
		return err
	}

	d.feed.Publish(a)
	return nil
}
