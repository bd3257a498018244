package simulation

import "math"

const (
	baseVibration        = 0.15 // mm/s RMS
	idleVibrationFactor  = 0.5
	referenceFeedRate    = 15000.0 // mm/min
	speedVibrationWeight = 2.0
	feedVibrationWeight  = 1.5
	wearVibrationWeight  = 3.0
)

// vibrationInput carries the values of the current tick that excite the frame.
type vibrationInput struct {
	Running       bool
	SpindleSpeed  float64
	SpindleLoad   float64
	FeedRate      float64
	LifeRemaining float64
}

func vibrationMultiplier(in vibrationInput) float64 {
	if !in.Running {
		return idleVibrationFactor
	}
	return 1 +
		speedVibrationWeight*(in.SpindleSpeed/referenceSpindleSpeed) +
		feedVibrationWeight*(in.FeedRate/referenceFeedRate) +
		in.SpindleLoad/100 +
		wearVibrationWeight*((100-in.LifeRemaining)/100)
}

// stepVibration draws fresh axis readings. Overall is always derived here.
func stepVibration(in vibrationInput, rnd RandomSource) VibrationState {
	level := baseVibration * vibrationMultiplier(in)
	v := VibrationState{
		X: level * rnd.Uniform(0.8, 1.2),
		Y: level * rnd.Uniform(0.8, 1.2),
		Z: level * rnd.Uniform(0.9, 1.1),
	}
	return v.withOverall()
}

// withOverall recomputes the Euclidean norm across axes.
func (v VibrationState) withOverall() VibrationState {
	v.Overall = math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	return v
}
