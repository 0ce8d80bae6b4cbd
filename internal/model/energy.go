package model

import (
	"fmt"
	"strings"
)

// EnergySource is the electricity supply powering a production scenario.
// The zero value is the grid mix.
type EnergySource int

// Energy sources. EnergyOther stands in for any name outside the known set.
const (
	EnergyGridMix EnergySource = iota
	EnergySolar
	EnergyWind
	EnergyHydro
	EnergyCoal
	EnergyNaturalGas
	EnergyDiesel
	EnergyOther
)

// EnergySources lists the named sources in form order.
var EnergySources = []EnergySource{
	EnergySolar,
	EnergyWind,
	EnergyHydro,
	EnergyGridMix,
	EnergyCoal,
	EnergyNaturalGas,
	EnergyDiesel,
}

// String returns the display name of the source.
func (e EnergySource) String() string {
	switch e {
	case EnergyGridMix:
		return "Grid mix"
	case EnergySolar:
		return "Solar"
	case EnergyWind:
		return "Wind"
	case EnergyHydro:
		return "Hydro"
	case EnergyCoal:
		return "Coal"
	case EnergyNaturalGas:
		return "Natural Gas"
	case EnergyDiesel:
		return "Diesel"
	case EnergyOther:
		return "Other"
	default:
		return fmt.Sprintf("EnergySource(%d)", int(e))
	}
}

// ParseEnergySource resolves a source name case-insensitively.
// Unrecognised names return EnergyOther together with ErrUnknownEnergySource,
// so callers can warn and still carry on with a neutral source.
func ParseEnergySource(s string) (EnergySource, error) {
	key := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	switch key {
	case "", "grid", "grid mix", "gridmix":
		return EnergyGridMix, nil
	case "solar":
		return EnergySolar, nil
	case "wind":
		return EnergyWind, nil
	case "hydro":
		return EnergyHydro, nil
	case "coal":
		return EnergyCoal, nil
	case "natural gas", "naturalgas", "gas":
		return EnergyNaturalGas, nil
	case "diesel":
		return EnergyDiesel, nil
	case "other":
		return EnergyOther, nil
	default:
		return EnergyOther, fmt.Errorf("%w: %q", ErrUnknownEnergySource, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e EnergySource) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to
// EnergyOther rather than failing, so stored scenarios stay loadable.
func (e *EnergySource) UnmarshalText(text []byte) error {
	src, _ := ParseEnergySource(string(text))
	*e = src
	return nil
}
