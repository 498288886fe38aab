package session

import (
	"context"
	"sync"

	"github.com/juruen/digitrec/hwr"
	"github.com/juruen/digitrec/log"
)

// HealthProber is the part of the recognition service the monitor needs.
type HealthProber interface {
	Health(ctx context.Context) (*hwr.HealthResponse, error)
}

// HealthMonitor issues exactly one readiness probe. There is no re-poll:
// the state goes stale if the service recovers or fails afterwards.
type HealthMonitor struct {
	prober HealthProber

	mu      sync.Mutex
	state   Health
	started bool
	done    chan struct{}

	// OnChange, when set, is called once with the settled state.
	OnChange func(Health)
}

func NewHealthMonitor(prober HealthProber) *HealthMonitor {
	return &HealthMonitor{
		prober: prober,
		state:  Checking,
		done:   make(chan struct{}),
	}
}

// Start launches the probe. Calls after the first are ignored.
func (m *HealthMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go m.probe(ctx)
}

func (m *HealthMonitor) probe(ctx context.Context) {
	state := Disconnected
	res, err := m.prober.Health(ctx)
	switch {
	case err != nil:
		log.Warning.Printf("recognition service health check failed: %v", err)
	case res.Ready():
		state = Connected
	default:
		log.Warning.Printf("recognition service is up but not ready: status=%q model_loaded=%v", res.Status, res.ModelLoaded)
		state = ModelNotLoaded
	}

	m.mu.Lock()
	m.state = state
	onChange := m.OnChange
	m.mu.Unlock()
	close(m.done)

	log.Info.Printf("recognition service: %s", state)
	if onChange != nil {
		onChange(state)
	}
}

func (m *HealthMonitor) State() Health {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Wait blocks until the probe has settled or ctx is done.
func (m *HealthMonitor) Wait(ctx context.Context) (Health, error) {
	select {
	case <-m.done:
		return m.State(), nil
	case <-ctx.Done():
		return m.State(), ctx.Err()
	}
}
