package cnc_simulator

import "time"

// MachineStatus is the wire form of one simulation snapshot.
type MachineStatus struct {
	Timestamp      time.Time  `json:"timestamp" yaml:"timestamp"`
	SimulationTime float64    `json:"simulation_time_s" yaml:"simulation_time_s"`
	State          string     `json:"state" yaml:"state"`           // Idle | Running | Alarm | Maintenance | Setup
	StateCode      int        `json:"state_code" yaml:"state_code"` // numeric form of State
	Program        Program    `json:"program" yaml:"program"`
	Spindle        Spindle    `json:"spindle" yaml:"spindle"`
	Feed           Feed       `json:"feed" yaml:"feed"`
	Tool           Tool       `json:"tool" yaml:"tool"`
	Vibration      Vibration  `json:"vibration" yaml:"vibration"`
	Production     Production `json:"production" yaml:"production"`
	Auxiliary      Auxiliary  `json:"auxiliary" yaml:"auxiliary"`
}

type Program struct {
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Active   bool    `json:"active" yaml:"active"`
	Progress float64 `json:"progress" yaml:"progress"` // 0..1
}

type Spindle struct {
	Speed       float64 `json:"speed" yaml:"speed"`             // rpm
	Load        float64 `json:"load" yaml:"load"`               // %
	Torque      float64 `json:"torque" yaml:"torque"`           // Nm
	Power       float64 `json:"power" yaml:"power"`             // kW
	Temperature float64 `json:"temperature" yaml:"temperature"` // °C
}

type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

type Feed struct {
	Rate     float64  `json:"rate" yaml:"rate"`         // mm/min
	Override float64  `json:"override" yaml:"override"` // %
	Position Position `json:"position" yaml:"position"` // mm
}

type Tool struct {
	Number        int     `json:"number" yaml:"number"`
	WearX         float64 `json:"wear_x" yaml:"wear_x"`                 // mm
	WearZ         float64 `json:"wear_z" yaml:"wear_z"`                 // mm
	LifeRemaining float64 `json:"life_remaining" yaml:"life_remaining"` // %
	State         string  `json:"state" yaml:"state"`                   // New | Good | Worn | Broken
}

type Vibration struct {
	X       float64 `json:"x_axis" yaml:"x_axis"`   // mm/s RMS
	Y       float64 `json:"y_axis" yaml:"y_axis"`   // mm/s RMS
	Z       float64 `json:"z_axis" yaml:"z_axis"`   // mm/s RMS
	Overall float64 `json:"overall" yaml:"overall"` // mm/s RMS
}

type Production struct {
	PartsProduced int     `json:"parts_produced" yaml:"parts_produced"`
	GoodParts     int     `json:"good_parts" yaml:"good_parts"`
	RejectedParts int     `json:"rejected_parts" yaml:"rejected_parts"`
	CycleTime     float64 `json:"cycle_time" yaml:"cycle_time"` // s
	Efficiency    float64 `json:"efficiency" yaml:"efficiency"` // %
}

type Auxiliary struct {
	CoolantLevel       float64 `json:"coolant_level" yaml:"coolant_level"`             // %
	CoolantTemperature float64 `json:"coolant_temperature" yaml:"coolant_temperature"` // °C
	AirPressure        float64 `json:"air_pressure" yaml:"air_pressure"`               // bar
	HydraulicPressure  float64 `json:"hydraulic_pressure" yaml:"hydraulic_pressure"`   // bar
}

// MachineInfo is the static nameplate of the simulated machine.
type MachineInfo struct {
	Name         string `json:"name" mapstructure:"name"`
	Model        string `json:"model" mapstructure:"model"`
	Manufacturer string `json:"manufacturer" mapstructure:"manufacturer"`
	SerialNumber string `json:"serial_number" mapstructure:"serial_number"`
}

// Units maps wire field paths to engineering units.
var Units = map[string]string{
	"spindle.speed":                 "rpm",
	"spindle.load":                  "%",
	"spindle.torque":                "Nm",
	"spindle.power":                 "kW",
	"spindle.temperature":           "°C",
	"feed.rate":                     "mm/min",
	"feed.override":                 "%",
	"feed.position.x":               "mm",
	"feed.position.y":               "mm",
	"feed.position.z":               "mm",
	"tool.wear_x":                   "mm",
	"tool.wear_z":                   "mm",
	"tool.life_remaining":           "%",
	"vibration.x_axis":              "mm/s RMS",
	"vibration.y_axis":              "mm/s RMS",
	"vibration.z_axis":              "mm/s RMS",
	"vibration.overall":             "mm/s RMS",
	"production.cycle_time":         "s",
	"production.efficiency":         "%",
	"auxiliary.coolant_level":       "%",
	"auxiliary.coolant_temperature": "°C",
	"auxiliary.air_pressure":        "bar",
	"auxiliary.hydraulic_pressure":  "bar",
}
