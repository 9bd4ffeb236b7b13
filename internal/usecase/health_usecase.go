package usecase

import "context"

// Pinger is implemented by anything the health check should ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	deps map[string]Pinger
}

// NewHealthUsecase pings each named dependency on Check.
func NewHealthUsecase(deps map[string]Pinger) HealthUsecase {
	return &healthUsecase{deps: deps}
}

// Check reports "ok" or "down" per dependency; healthy is false when any
// ping fails.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"status": "ok"}
	healthy := true
	for name, dep := range u.deps {
		if err := dep.Ping(ctx); err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
