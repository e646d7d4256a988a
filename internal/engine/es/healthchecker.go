package es

import "context"

type HealthChecker struct {
	engine *Engine
}

func NewHealthChecker(engine *Engine) *HealthChecker {
	return &HealthChecker{
		engine: engine,
	}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.engine == nil {
		return false
	}
	return hc.engine.Ping(ctx) == nil
}
