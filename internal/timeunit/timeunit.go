// Package timeunit converts benchmark times between units and formats them
// for display.
package timeunit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unit is a time unit name.
type Unit string

const (
	Microseconds Unit = "microseconds"
	Milliseconds Unit = "milliseconds"
	Seconds      Unit = "seconds"
	Minutes      Unit = "minutes"
	Hours        Unit = "hours"
	Days         Unit = "days"
)

// Mode selects whether values are shown as elapsed time or as throughput.
type Mode string

const (
	ModeTime       Mode = "time"
	ModeThroughput Mode = "throughput"
)

// DefaultPrecision is the number of decimals used when none is given.
const DefaultPrecision = 3

// microseconds per unit
var factors = map[Unit]float64{
	Microseconds: 1,
	Milliseconds: 1e3,
	Seconds:      1e6,
	Minutes:      60e6,
	Hours:        3600e6,
	Days:         86400e6,
}

var suffixes = map[Unit]string{
	Microseconds: "μs",
	Milliseconds: "ms",
	Seconds:      "s",
	Minutes:      "m",
	Hours:        "h",
	Days:         "d",
}

var printer = message.NewPrinter(language.English)

// TimeUnit converts values from a source unit into a destination unit.
type TimeUnit struct {
	Source    Unit
	Dest      Unit
	Mode      Mode
	Precision int
}

// New returns a TimeUnit converting microseconds into dest.
func New(dest Unit, mode Mode, precision int) TimeUnit {
	return TimeUnit{Source: Microseconds, Dest: dest, Mode: mode, Precision: precision}
}

// Default converts microseconds to microseconds in time mode.
func Default() TimeUnit {
	return New(Microseconds, ModeTime, DefaultPrecision)
}

// ParseUnit resolves a unit name. Suffixes such as "ms" are accepted too.
func ParseUnit(name string) (Unit, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := factors[Unit(name)]; ok {
		return Unit(name), nil
	}
	for unit, suffix := range suffixes {
		if name == suffix || (name == "us" && unit == Microseconds) {
			return unit, nil
		}
	}
	return "", fmt.Errorf("unknown time unit: %s", name)
}

// ParseMode resolves a mode name.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case ModeTime:
		return ModeTime, nil
	case ModeThroughput:
		return ModeThroughput, nil
	default:
		return "", fmt.Errorf("unknown mode: %s", name)
	}
}

// ToDestUnit converts value using the configured mode.
func (u TimeUnit) ToDestUnit(value float64) float64 {
	return u.convert(value, u.Mode)
}

// DestSuffix returns the display suffix for the configured mode.
func (u TimeUnit) DestSuffix() string {
	return u.suffix(u.Mode)
}

// Format converts value in the given mode and renders it with precision
// decimals and the unit suffix. A negative precision uses the configured one.
func (u TimeUnit) Format(value float64, precision int, mode Mode) string {
	if precision < 0 {
		precision = u.Precision
	}
	if mode == "" {
		mode = u.Mode
	}
	return Number(u.convert(value, mode), precision) + u.suffix(mode)
}

func (u TimeUnit) convert(value float64, mode Mode) float64 {
	converted := value * u.factor(u.Source) / u.factor(u.Dest)
	if mode != ModeThroughput {
		return converted
	}
	if converted == 0 {
		return 0
	}
	return 1 / converted
}

func (u TimeUnit) factor(unit Unit) float64 {
	if f, ok := factors[unit]; ok {
		return f
	}
	return 1
}

func (u TimeUnit) suffix(mode Mode) string {
	suffix, ok := suffixes[u.Dest]
	if !ok {
		suffix = suffixes[Microseconds]
	}
	if mode == ModeThroughput {
		return "ops/" + suffix
	}
	return suffix
}

// Number renders value with precision decimals and comma grouped thousands.
// Halves round away from zero.
func Number(value float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", precision), round(value, precision))
}

// round rounds half away from zero at precision decimals. The scaled value is
// first cut to 15 significant digits so 1.0005 (stored as 1.000499...) is
// treated as the half it was written as.
func round(value float64, precision int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	scale := math.Pow(10, float64(precision))
	scaled, err := strconv.ParseFloat(strconv.FormatFloat(value*scale, 'g', 15, 64), 64)
	if err != nil {
		scaled = value * scale
	}
	return math.Round(scaled) / scale
}
