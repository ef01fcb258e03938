package prediction

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lifeguard-ai/lifeguard-backend/internal/repository"
)

// Manager periodically generates a fresh batch of predictions and
// persists them. Disabled by default; real deployments would ingest
// model output instead.
type Manager struct {
	gen      Generator
	repo     repository.PredictionRepository
	interval time.Duration
	wg       sync.WaitGroup
}

func NewManager(gen Generator, repo repository.PredictionRepository, interval time.Duration) *Manager {
	return &Manager{
		gen:      gen,
		repo:     repo,
		interval: interval,
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.wg.Add(1)
	go m.run(ctx)
}

func (m *Manager) run(ctx context.Context) {
	defer m.wg.Done()
	slog.Info("starting prediction generator", "interval", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.generate(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("prediction generator shutting down")
			return
		case <-ticker.C:
			m.generate(ctx)
		}
	}
}

func (m *Manager) generate(ctx context.Context) {
	preds := m.gen.Generate()
	for i := range preds {
		if err := m.repo.AddPrediction(ctx, &preds[i]); err != nil {
			slog.Error("error storing prediction", "id", preds[i].ID, "error", err)
		}
	}
	slog.Debug("prediction batch stored", "count", len(preds))
}

func (m *Manager) Stop() {
	m.wg.Wait()
	slog.Info("prediction manager stopped")
}
