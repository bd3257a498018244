package simulation

import "math"

const (
	coolantConsumptionPerSec = 0.01 // % per second while cutting
	coolantBaseTemperatureC  = 30.0
	coolantRelaxRate         = 0.1 // per second
	coolantTempNoiseSigma    = 0.5

	airPressureNoiseSigma = 0.1
	minAirPressureBar     = 5.5
	maxAirPressureBar     = 6.5

	idleHydraulicPressure   = 35.0
	runningHydraulicSigma   = 2.0
	idleHydraulicSigma      = 1.0
	minHydraulicPressureBar = 30.0
	maxHydraulicPressureBar = 50.0
)

// stepAuxiliary advances coolant, pneumatics and hydraulics by dt seconds.
func stepAuxiliary(prev AuxiliaryState, running bool, spindleLoad, dt float64, rnd RandomSource) AuxiliaryState {
	next := prev

	if running {
		next.CoolantLevel = math.Max(0, prev.CoolantLevel-coolantConsumptionPerSec*dt)
	}

	target := idleCoolantTemperatureC
	if running {
		target = coolantBaseTemperatureC + spindleLoad/10
	}
	next.CoolantTemperature = relax(prev.CoolantTemperature, target, coolantRelaxRate, dt) +
		rnd.Gaussian(0, coolantTempNoiseSigma)

	next.AirPressure = clamp(rnd.Gaussian(nominalAirPressureBar, airPressureNoiseSigma),
		minAirPressureBar, maxAirPressureBar)

	var hydraulic float64
	if running {
		hydraulic = rnd.Gaussian(nominalHydraulicPressure, runningHydraulicSigma)
	} else {
		hydraulic = rnd.Gaussian(idleHydraulicPressure, idleHydraulicSigma)
	}
	next.HydraulicPressure = clamp(hydraulic, minHydraulicPressureBar, maxHydraulicPressureBar)
	return next
}
