package simulation

import "math"

// stepToolWear accumulates wear while cutting. A tool that is not cutting is
// returned unchanged.
func stepToolWear(prev ToolState, running bool, cfg ToolConfig, dt float64, rnd RandomSource) ToolState {
	if !running {
		return prev
	}
	next := prev
	wear := cfg.BaseWearRate * dt
	next.WearX += wear * rnd.Uniform(0.5, 1.5)
	next.WearZ += wear * rnd.Uniform(0.5, 1.5)
	next.LifeRemaining = lifeRemaining(next.WearX, next.WearZ, cfg.MaxWear)
	next.Lifecycle = lifecycleFor(next.LifeRemaining)
	return next
}

func lifeRemaining(wearX, wearZ, maxWear float64) float64 {
	if maxWear <= 0 {
		return 0
	}
	used := math.Max(wearX, wearZ) / maxWear * 100
	return math.Max(0, 100-used)
}

// freshTool returns tool number with no wear.
func freshTool(number int) ToolState {
	return ToolState{
		Number:        number,
		LifeRemaining: fullLifePercent,
		Lifecycle:     lifecycleFor(fullLifePercent),
	}
}
