// Package metrics exposes machine process values and simulator health as
// Prometheus metrics.
//
// Gauges mirror the latest machine status (spindle, feed, tool, vibration,
// production, auxiliary) so a dashboard can plot them without polling the
// REST API. Counters track ticks, tick failures and machine events by type.
package metrics

import (
	"net/http"
	"time"

	cnc "cnc_simulator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cnc"

// Collector implements service.Observer.
type Collector struct {
	gatherer prometheus.Gatherer

	state *prometheus.GaugeVec // one series per state name, 1 for the current one

	spindleSpeed       prometheus.Gauge
	spindleLoad        prometheus.Gauge
	spindleTorque      prometheus.Gauge
	spindlePower       prometheus.Gauge
	spindleTemperature prometheus.Gauge
	feedRate           prometheus.Gauge
	feedOverride       prometheus.Gauge
	programProgress    prometheus.Gauge
	toolNumber         prometheus.Gauge
	toolLife           prometheus.Gauge
	toolWear           *prometheus.GaugeVec
	vibration          *prometheus.GaugeVec
	partsProduced      prometheus.Gauge
	goodParts          prometheus.Gauge
	rejectedParts      prometheus.Gauge
	efficiency         prometheus.Gauge
	cycleTime          prometheus.Gauge
	coolantLevel       prometheus.Gauge
	coolantTemperature prometheus.Gauge
	airPressure        prometheus.Gauge
	hydraulicPressure  prometheus.Gauge
	simulationTime     prometheus.Gauge

	ticks        prometheus.Counter
	tickFailures prometheus.Counter
	tickDuration prometheus.Histogram
	events       *prometheus.CounterVec
}

var stateNames = []string{"Idle", "Running", "Alarm", "Maintenance", "Setup"}

func gauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
}

// NewCollector creates the metrics and registers them with reg. A nil reg
// uses a fresh private registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{
		gatherer: reg,
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "machine_state",
			Help:      "Current operating state (1 for the active state, 0 otherwise)",
		}, []string{"state"}),

		spindleSpeed:       gauge("spindle_speed_rpm", "Spindle speed in rpm"),
		spindleLoad:        gauge("spindle_load_percent", "Spindle load in percent"),
		spindleTorque:      gauge("spindle_torque_nm", "Spindle torque in Nm"),
		spindlePower:       gauge("spindle_power_kw", "Spindle power in kW"),
		spindleTemperature: gauge("spindle_temperature_celsius", "Spindle temperature in °C"),
		feedRate:           gauge("feed_rate_mm_per_min", "Feed rate in mm/min"),
		feedOverride:       gauge("feed_override_percent", "Operator feed override in percent"),
		programProgress:    gauge("program_progress_ratio", "Progress of the active program, 0..1"),
		toolNumber:         gauge("tool_number", "Mounted tool number"),
		toolLife:           gauge("tool_life_remaining_percent", "Remaining tool life in percent"),
		toolWear: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tool_wear_mm",
			Help:      "Tool wear per axis in mm",
		}, []string{"axis"}),
		vibration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vibration_mm_per_s",
			Help:      "Vibration velocity RMS in mm/s",
		}, []string{"axis"}),
		partsProduced:      gauge("parts_produced", "Parts produced since the last counter reset"),
		goodParts:          gauge("good_parts", "Good parts since the last counter reset"),
		rejectedParts:      gauge("rejected_parts", "Rejected parts since the last counter reset"),
		efficiency:         gauge("efficiency_percent", "Good parts over all parts in percent"),
		cycleTime:          gauge("last_cycle_time_seconds", "Duration of the last completed cycle in simulated seconds"),
		coolantLevel:       gauge("coolant_level_percent", "Coolant level in percent"),
		coolantTemperature: gauge("coolant_temperature_celsius", "Coolant temperature in °C"),
		airPressure:        gauge("air_pressure_bar", "Air pressure in bar"),
		hydraulicPressure:  gauge("hydraulic_pressure_bar", "Hydraulic pressure in bar"),
		simulationTime:     gauge("simulation_time_seconds", "Simulated seconds since start"),

		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulator_ticks_total",
			Help:      "Simulation ticks attempted",
		}),
		tickFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulator_tick_failures_total",
			Help:      "Simulation ticks that returned an error",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulator_tick_duration_seconds",
			Help:      "Wall-clock time spent in one simulation tick, persistence included",
			Buckets:   prometheus.DefBuckets,
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "machine_events_total",
			Help:      "Machine events recorded, by type",
		}, []string{"type"}),
	}

	reg.MustRegister(
		c.state,
		c.spindleSpeed, c.spindleLoad, c.spindleTorque, c.spindlePower, c.spindleTemperature,
		c.feedRate, c.feedOverride, c.programProgress,
		c.toolNumber, c.toolLife, c.toolWear, c.vibration,
		c.partsProduced, c.goodParts, c.rejectedParts, c.efficiency, c.cycleTime,
		c.coolantLevel, c.coolantTemperature, c.airPressure, c.hydraulicPressure,
		c.simulationTime,
		c.ticks, c.tickFailures, c.tickDuration, c.events,
	)
	return c
}

// ObserveStatus copies s into the gauges.
func (c *Collector) ObserveStatus(s cnc.MachineStatus) {
	for _, name := range stateNames {
		v := 0.0
		if name == s.State {
			v = 1
		}
		c.state.WithLabelValues(name).Set(v)
	}

	c.spindleSpeed.Set(s.Spindle.Speed)
	c.spindleLoad.Set(s.Spindle.Load)
	c.spindleTorque.Set(s.Spindle.Torque)
	c.spindlePower.Set(s.Spindle.Power)
	c.spindleTemperature.Set(s.Spindle.Temperature)
	c.feedRate.Set(s.Feed.Rate)
	c.feedOverride.Set(s.Feed.Override)
	c.programProgress.Set(s.Program.Progress)
	c.toolNumber.Set(float64(s.Tool.Number))
	c.toolLife.Set(s.Tool.LifeRemaining)
	c.toolWear.WithLabelValues("x").Set(s.Tool.WearX)
	c.toolWear.WithLabelValues("z").Set(s.Tool.WearZ)
	c.vibration.WithLabelValues("x").Set(s.Vibration.X)
	c.vibration.WithLabelValues("y").Set(s.Vibration.Y)
	c.vibration.WithLabelValues("z").Set(s.Vibration.Z)
	c.vibration.WithLabelValues("overall").Set(s.Vibration.Overall)
	c.partsProduced.Set(float64(s.Production.PartsProduced))
	c.goodParts.Set(float64(s.Production.GoodParts))
	c.rejectedParts.Set(float64(s.Production.RejectedParts))
	c.efficiency.Set(s.Production.Efficiency)
	c.cycleTime.Set(s.Production.CycleTime)
	c.coolantLevel.Set(s.Auxiliary.CoolantLevel)
	c.coolantTemperature.Set(s.Auxiliary.CoolantTemperature)
	c.airPressure.Set(s.Auxiliary.AirPressure)
	c.hydraulicPressure.Set(s.Auxiliary.HydraulicPressure)
	c.simulationTime.Set(s.SimulationTime)
}

func (c *Collector) ObserveEvent(eventType string) {
	c.events.WithLabelValues(eventType).Inc()
}

func (c *Collector) ObserveTick(d time.Duration, err error) {
	c.ticks.Inc()
	c.tickDuration.Observe(d.Seconds())
	if err != nil {
		c.tickFailures.Inc()
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
