package simulation

import "math"

const (
	baseFeedRate         = 500.0  // mm/min at program start
	progressFeedRate     = 2000.0 // mm/min added by program end
	maxFeedChangePerSec  = 1000.0 // mm/min per second
	feedNoiseScale       = 0.1
	toolpathRadiusMm     = 50.0
	toolpathAngularSpeed = 0.1 // rad/s
	toolpathStartZ       = -10.0
	toolpathDepthZ       = -5.0
	positionJitterMm     = 0.01
)

// feedDrive is what the feed model needs from the rest of the machine.
type feedDrive struct {
	Running        bool
	Progress       float64
	SimulationTime float64
	NoiseFactor    float64
}

// stepFeed advances the feed axes by dt seconds.
func stepFeed(prev FeedState, in feedDrive, dt float64, rnd RandomSource) FeedState {
	next := prev

	target := 0.0
	if in.Running {
		target = (baseFeedRate + in.Progress*progressFeedRate) * (prev.Override / 100)
	}
	rate := rateLimit(prev.Rate, target, maxFeedChangePerSec*dt)
	rate += rnd.Gaussian(0, rate*in.NoiseFactor*feedNoiseScale)
	next.Rate = math.Max(0, rate)

	if in.Running {
		angle := in.SimulationTime * toolpathAngularSpeed
		next.Position = Position{
			X: toolpathRadiusMm*math.Cos(angle) + rnd.Gaussian(0, positionJitterMm),
			Y: toolpathRadiusMm*math.Sin(angle) + rnd.Gaussian(0, positionJitterMm),
			Z: toolpathStartZ + in.Progress*toolpathDepthZ + rnd.Gaussian(0, positionJitterMm),
		}
	}
	return next
}
