package domain

import "math/rand"

// Base intensity ladders. Each returns a value in [0,1] from hour of day
// (0-23) and Monday-indexed day of week; flood risk also takes the daily
// rainfall in millimeters. Kept free of randomness so they are
// independently testable.

// BaseTrafficIntensity models commute peaks on weekdays and a broad
// leisure plateau on weekends.
func BaseTrafficIntensity(hour, dayOfWeek int) float64 {
	if dayOfWeek < 5 {
		switch {
		case (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19):
			return 0.9
		case hour >= 12 && hour <= 14:
			return 0.6
		default:
			return 0.2
		}
	}
	if hour >= 10 && hour <= 18 {
		return 0.4
	}
	return 0.2
}

// BaseTouristIntensity models heavy weekend daytime flow and light
// weekday visiting hours.
func BaseTouristIntensity(hour, dayOfWeek int) float64 {
	if dayOfWeek >= 5 {
		if hour >= 9 && hour <= 18 {
			return 0.9
		}
		return 0.1
	}
	if hour >= 10 && hour <= 17 {
		return 0.4
	}
	return 0.1
}

// BaseFloodIntensity scales with daily rainfall, spiking when heavy rain
// coincides with morning or evening drainage-stress windows.
func BaseFloodIntensity(hour int, rainfallMM float64) float64 {
	switch {
	case rainfallMM <= 0:
		return 0.1
	case rainfallMM > 30 && ((hour >= 6 && hour <= 10) || (hour >= 16 && hour <= 20)):
		return 0.9
	case rainfallMM > 15:
		return 0.6
	default:
		return 0.3
	}
}

// perturbation returns the width of the uniform random term added on top
// of the base ladder for a category.
func (c Category) perturbation() float64 {
	if c == CategoryFlood {
		return 0.2
	}
	return 0.3
}

// baseIntensity dispatches to the category's ladder.
func (c Category) baseIntensity(hour, dayOfWeek int, rainfallMM float64) float64 {
	switch c {
	case CategoryTraffic:
		return BaseTrafficIntensity(hour, dayOfWeek)
	case CategoryTourist:
		return BaseTouristIntensity(hour, dayOfWeek)
	case CategoryFlood:
		return BaseFloodIntensity(hour, rainfallMM)
	}
	return 0
}

// SampleIntensity draws one intensity value on the [0,10] display scale:
// base ladder plus U(0, perturbation), clamped to 1.0, times 10.
func (c Category) SampleIntensity(hour, dayOfWeek int, rainfallMM float64, rng *rand.Rand) float64 {
	v := c.baseIntensity(hour, dayOfWeek, rainfallMM) + rng.Float64()*c.perturbation()
	if v > 1.0 {
		v = 1.0
	}
	return v * 10
}
