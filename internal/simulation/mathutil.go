package simulation

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rateLimit moves current toward target by at most maxStep.
func rateLimit(current, target, maxStep float64) float64 {
	diff := target - current
	switch {
	case diff > maxStep:
		return current + maxStep
	case diff < -maxStep:
		return current - maxStep
	default:
		return target
	}
}

// relax applies first-order lag toward target. The blend factor is capped at
// one so a long step lands on the target instead of overshooting it.
func relax(current, target, ratePerSecond, dt float64) float64 {
	k := ratePerSecond * dt
	if k > 1 {
		k = 1
	}
	return current + (target-current)*k
}
