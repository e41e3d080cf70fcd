package build

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager runs the builder as a service, rebuilding on the configured
// interval.
//
// Manager implements [surge.Service].
type Manager struct {
	builder  *Builder
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewManager returns a [Manager] rebuilding every interval.
func NewManager(builder *Builder, interval time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		builder:  builder,
		interval: interval,
		logger:   logger,
	}
}

// ZapField implements [surge.Service.ZapField].
func (m *Manager) ZapField() zap.Field {
	return zap.String("service", "build manager")
}

// Builder returns the managed builder.
func (m *Manager) Builder() *Builder {
	return m.builder
}

// Start runs the initial build and launches the rebuild loop.
// A failed initial build fails startup; later failures are logged and the
// outputs of the last successful build stay in place.
func (m *Manager) Start(ctx context.Context) error {
	if _, err := m.builder.Build(ctx); err != nil {
		return err
	}
	if m.interval <= 0 {
		return nil
	}

	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := m.builder.Build(ctx); err != nil {
					m.logger.Error("Failed to rebuild rulesets", zap.Error(err))
				}
			}
		}
	}()
	return nil
}

// Stop stops the rebuild loop and waits for an in-flight build to finish.
func (m *Manager) Stop() error {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	return nil
}
