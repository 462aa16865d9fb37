package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sonumahanty/Swiss-Re/internal/logging"
)

// Manager starts components in registration order and stops them in
// reverse, with a per-component shutdown timeout.
type Manager struct {
	components      []Component
	started         []Component
	shutdownTimeout time.Duration
	logger          *logging.Logger
}

// NewManager creates a manager with a 10 second shutdown timeout
func NewManager() *Manager {
	return &Manager{
		shutdownTimeout: 10 * time.Second,
		logger:          logging.GetLogger("lifecycle"),
	}
}

// Register adds a component. Components start in the order they were
// registered.
func (m *Manager) Register(component Component) error {
	if component == nil {
		return fmt.Errorf("cannot register nil component")
	}
	if component.Name() == "" {
		return fmt.Errorf("component must have a non-empty name")
	}
	for _, c := range m.components {
		if c == component {
			return fmt.Errorf("component %s is already registered", component.Name())
		}
	}

	m.components = append(m.components, component)
	m.logger.Debug("Registered component %s", component.Name())
	return nil
}

// Start starts every registered component. If one fails, the ones already
// started are stopped in reverse order and the error is returned.
func (m *Manager) Start(ctx context.Context) error {
	m.started = m.started[:0]

	for _, component := range m.components {
		startTime := time.Now()

		if err := component.Start(ctx); err != nil {
			m.logger.Error("Failed to start %s: %v", component.Name(), err)
			m.stopStarted(context.Background())
			return fmt.Errorf("initialization failed for %s: %w", component.Name(), err)
		}

		m.started = append(m.started, component)
		m.logger.Debug("%s started (took %dms)", component.Name(), time.Since(startTime).Milliseconds())
	}

	return nil
}

// Stop stops started components in reverse order. Every component is
// stopped even if an earlier one fails; the errors are joined.
func (m *Manager) Stop(ctx context.Context) error {
	return m.stopStarted(ctx)
}

func (m *Manager) stopStarted(ctx context.Context) error {
	var errs []error

	for i := len(m.started) - 1; i >= 0; i-- {
		component := m.started[i]

		componentCtx, cancel := context.WithTimeout(ctx, m.shutdownTimeout)
		err := component.Stop(componentCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				m.logger.Warn("Component %s exceeded grace period (%dms timeout)",
					component.Name(), m.shutdownTimeout.Milliseconds())
			} else {
				m.logger.Error("Error stopping %s: %v", component.Name(), err)
			}
			errs = append(errs, fmt.Errorf("%s: %w", component.Name(), err))
			continue
		}
		m.logger.Debug("%s stopped", component.Name())
	}

	m.started = m.started[:0]
	return errors.Join(errs...)
}

// SetShutdownTimeout sets the grace period applied to each Stop call
func (m *Manager) SetShutdownTimeout(timeout time.Duration) {
	m.shutdownTimeout = timeout
}
