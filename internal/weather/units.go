package weather

import "math"

// Unit selects the display unit system. Stored values are always metric.
type Unit string

const (
	UnitMetric   Unit = "metric"
	UnitImperial Unit = "imperial"
)

const mphPerMeterPerSecond = 0.621371192237334

// CelsiusToFahrenheit converts a Celsius temperature.
func CelsiusToFahrenheit(c float64) float64 {
	return c*1.8 + 32
}

// DisplayTemperature converts a stored Celsius temperature to the preferred
// display unit.
func DisplayTemperature(celsius float64, unit Unit) float64 {
	if unit == UnitImperial {
		return CelsiusToFahrenheit(celsius)
	}
	return celsius
}

// DisplayWindSpeed converts a stored m/s wind speed to the preferred display
// unit. Imperial is mph rounded to whole numbers; metric passes through
// unrounded.
func DisplayWindSpeed(mps float64, unit Unit) float64 {
	if unit == UnitImperial {
		return math.Round(mps * mphPerMeterPerSecond)
	}
	return mps
}

// CompassDirection buckets wind degrees into an 8-point compass label.
// Buckets are 45 degrees wide, half-open, offset by 22.5; anything outside
// them is N.
func CompassDirection(degrees float64) string {
	switch {
	case degrees >= 22.5 && degrees < 67.5:
		return "NE"
	case degrees >= 67.5 && degrees < 112.5:
		return "E"
	case degrees >= 112.5 && degrees < 157.5:
		return "SE"
	case degrees >= 157.5 && degrees < 202.5:
		return "S"
	case degrees >= 202.5 && degrees < 247.5:
		return "SW"
	case degrees >= 247.5 && degrees < 292.5:
		return "W"
	case degrees >= 292.5 && degrees < 337.5:
		return "NW"
	default:
		return "N"
	}
}
