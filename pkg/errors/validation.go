package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateLayerName validates the name of the scratch graphics layer.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateLayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidConfig, "graphics layer name is null or empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidConfig, "graphics layer name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "graphics layer name contains invalid control characters")
		}
	}

	return nil
}

// ValidateCoordinate validates a WGS84 latitude/longitude pair in decimal degrees.
func ValidateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return New(ErrCodeInvalidInput, "coordinate must be finite (lat=%v, lon=%v)", lat, lon)
	}
	if lat < -90 || lat > 90 {
		return New(ErrCodeInvalidInput, "latitude %v is not in the range (-90,90)", lat)
	}
	if lon < -180 || lon > 180 {
		return New(ErrCodeInvalidInput, "longitude %v is not in the range (-180,180)", lon)
	}
	return nil
}

// ValidateRadii validates CEP circle radii. Every radius must be a positive,
// finite distance.
func ValidateRadii(radii []float64) error {
	for i, r := range radii {
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return New(ErrCodeInvalidInput, "radius %d (%v) must be a positive distance", i, r)
		}
	}
	return nil
}
