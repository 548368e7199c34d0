package tone

import (
	"fmt"
	"slices"
)

// Calibration shifts the warm/cool decision boundary for a population.
// Values are opaque, versioned constants; they are not derived at runtime.
type Calibration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	AOffset     float64 `json:"a_offset"`
	BOffset     float64 `json:"b_offset"`
	Deadband    float64 `json:"deadband"`
}

// CalibrationVersion identifies the revision of the built-in calibration table.
const CalibrationVersion = "2025.1"

// DefaultCalibrationName is the profile used when none is requested.
const DefaultCalibrationName = "default"

// calibrations is the built-in profile table. It is never mutated; lookups return copies.
var calibrations = [...]Calibration{
	{
		Name:        DefaultCalibrationName,
		Description: "Uncalibrated: boundary at a*=b*=0 for general colour samples",
		Deadband:    5,
	},
	{
		Name:        "skin-light",
		Description: "Light skin: undertone boundary raised to the typical b* of fair skin",
		AOffset:     11,
		BOffset:     14,
		Deadband:    3,
	},
	{
		Name:        "skin-medium",
		Description: "Medium skin: boundary at the typical a*/b* of olive and tan skin",
		AOffset:     12,
		BOffset:     18,
		Deadband:    3,
	},
	{
		Name:        "skin-deep",
		Description: "Deep skin: boundary at the typical a*/b* of deep skin tones",
		AOffset:     10,
		BOffset:     16,
		Deadband:    4,
	},
}

// DefaultCalibration returns the uncalibrated profile.
func DefaultCalibration() Calibration {
	return calibrations[0]
}

// LookupCalibration returns the named calibration profile.
func LookupCalibration(name string) (Calibration, bool) {
	for _, c := range calibrations {
		if c.Name == name {
			return c, true
		}
	}
	return Calibration{}, false
}

// ParseCalibration returns the named calibration or an error listing valid names.
// An empty name selects the default profile.
func ParseCalibration(name string) (Calibration, error) {
	if name == "" {
		return DefaultCalibration(), nil
	}
	c, ok := LookupCalibration(name)
	if !ok {
		return Calibration{}, fmt.Errorf("unknown calibration: %s (valid calibrations: %v)", name, CalibrationNames())
	}
	return c, nil
}

// CalibrationNames returns the names of all built-in profiles in table order.
func CalibrationNames() []string {
	names := make([]string, len(calibrations))
	for i, c := range calibrations {
		names[i] = c.Name
	}
	return names
}

// Calibrations returns a copy of the built-in profile table.
func Calibrations() []Calibration {
	return slices.Clone(calibrations[:])
}
