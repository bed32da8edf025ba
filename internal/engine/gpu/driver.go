package gpu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDriver is returned when every driver type failed to create a device.
var ErrNoDriver = errors.New("no usable graphics driver")

// DriverType is one way of obtaining a device, tried in priority order.
type DriverType int

const (
	// DriverHardware is an accelerated context at the preferred profile.
	DriverHardware DriverType = iota
	// DriverWarp is an accelerated context at a lower profile.
	DriverWarp
	// DriverReference is an unaccelerated software context.
	DriverReference
)

var driverNames = map[DriverType]string{
	DriverHardware:  "hardware",
	DriverWarp:      "warp",
	DriverReference: "reference",
}

// String returns the driver name.
func (d DriverType) String() string {
	if name, ok := driverNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DriverType(%d)", int(d))
}

// DefaultDrivers is the default priority list.
func DefaultDrivers() []DriverType {
	return []DriverType{DriverHardware, DriverWarp, DriverReference}
}

// ParseDrivers resolves driver names from config.
func ParseDrivers(names []string) ([]DriverType, error) {
	if len(names) == 0 {
		return DefaultDrivers(), nil
	}
	drivers := make([]DriverType, 0, len(names))
	for _, name := range names {
		found := false
		for d, n := range driverNames {
			if strings.EqualFold(n, name) {
				drivers = append(drivers, d)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown driver type %q", name)
		}
	}
	return drivers, nil
}

// CreateFirst calls create for each driver in order and returns the first success.
// If every attempt fails, the error wraps ErrNoDriver and each attempt's error.
func CreateFirst[T any](drivers []DriverType, create func(DriverType) (T, error)) (T, DriverType, error) {
	var zero T
	errs := []error{ErrNoDriver}
	for _, d := range drivers {
		v, err := create(d)
		if err == nil {
			return v, d, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", d, err))
	}
	return zero, 0, errors.Join(errs...)
}
