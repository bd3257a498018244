package simulation

import "math"

const (
	referenceSpindleSpeed = 6000.0 // rpm used to normalise speed-dependent terms
	baseLoadPercent       = 30.0
	speedLoadPercent      = 40.0
	loadNoiseSigma        = 5.0
	maxTorqueNm           = 200.0
	loadHeatingC          = 30.0
	speedHeatingC         = 20.0
	spindleTempNoiseSigma = 2.0
	passiveCoolingRate    = 0.1 // per second
	speedNoiseScale       = 0.1
)

// spindleDrive is what the spindle model needs from the rest of the machine.
type spindleDrive struct {
	TargetSpeed  float64
	Acceleration float64
	NoiseFactor  float64
}

// stepSpindle advances the spindle by dt seconds.
func stepSpindle(prev SpindleState, in spindleDrive, dt float64, rnd RandomSource) SpindleState {
	next := prev

	speed := rateLimit(prev.Speed, in.TargetSpeed, in.Acceleration*dt)
	speed += rnd.Gaussian(0, speed*in.NoiseFactor*speedNoiseScale)
	next.Speed = math.Max(0, speed)

	if next.Speed == 0 {
		next.Load = 0
		next.Torque = 0
		next.Power = 0
		next.Temperature = relax(prev.Temperature, AmbientTemperatureC, passiveCoolingRate, dt)
		return next
	}

	speedRatio := next.Speed / referenceSpindleSpeed
	load := baseLoadPercent + speedRatio*speedLoadPercent + rnd.Gaussian(0, loadNoiseSigma)
	next.Load = clamp(load, 0, 100)
	next.Torque = next.Load / 100 * maxTorqueNm
	next.Power = spindlePower(next.Torque, next.Speed)
	next.Temperature = AmbientTemperatureC +
		next.Load/100*loadHeatingC +
		speedRatio*speedHeatingC +
		rnd.Gaussian(0, spindleTempNoiseSigma)
	return next
}

// spindlePower converts torque (N·m) and speed (rpm) into kW.
func spindlePower(torque, speed float64) float64 {
	return torque * speed * 2 * math.Pi / 60000
}
