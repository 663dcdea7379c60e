// Package tempconv implements the temperature conversion drill from
// chapter three. The typed Celsius/Fahrenheit/Kelvin values are the
// chapter's worked example of named float types with methods.
package tempconv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Celsius float64
type Fahrenheit float64
type Kelvin float64

const (
	AbsoluteZeroC Celsius = -273.15
	FreezingC     Celsius = 0
	BoilingC      Celsius = 100
)

// displayRound quashes float noise from chained conversions, so -40F
// shows as 233.15K rather than 233.14999999999998K.
func displayRound(v float64) float64 {
	return math.Round(v*1e10) / 1e10
}

func (c Celsius) String() string    { return fmt.Sprintf("%g°C", displayRound(float64(c))) }
func (f Fahrenheit) String() string { return fmt.Sprintf("%g°F", displayRound(float64(f))) }
func (k Kelvin) String() string     { return fmt.Sprintf("%gK", displayRound(float64(k))) }

// CToF converts a Celsius temperature to Fahrenheit.
func CToF(c Celsius) Fahrenheit { return Fahrenheit(c*9/5 + 32) }

// CToK converts a Celsius temperature to Kelvin.
func CToK(c Celsius) Kelvin { return Kelvin(c - AbsoluteZeroC) }

// FToC converts a Fahrenheit temperature to Celsius.
func FToC(f Fahrenheit) Celsius { return Celsius((f - 32) * 5 / 9) }

// FToK converts a Fahrenheit temperature to Kelvin.
func FToK(f Fahrenheit) Kelvin { return CToK(FToC(f)) }

// KToC converts a Kelvin temperature to Celsius.
func KToC(k Kelvin) Celsius { return Celsius(k) + AbsoluteZeroC }

// KToF converts a Kelvin temperature to Fahrenheit.
func KToF(k Kelvin) Fahrenheit { return CToF(KToC(k)) }

// Scale identifies a temperature scale by its letter.
type Scale byte

const (
	ScaleCelsius    Scale = 'C'
	ScaleFahrenheit Scale = 'F'
	ScaleKelvin     Scale = 'K'
)

// ErrBelowAbsoluteZero rejects temperatures colder than physics allows.
var ErrBelowAbsoluteZero = errors.New("below absolute zero")

// Reading is a parsed temperature carrying its original scale.
type Reading struct {
	Value float64
	Scale Scale
}

// String formats the reading in its original scale.
func (r Reading) String() string {
	switch r.Scale {
	case ScaleFahrenheit:
		return Fahrenheit(r.Value).String()
	case ScaleKelvin:
		return Kelvin(r.Value).String()
	default:
		return Celsius(r.Value).String()
	}
}

// Celsius normalizes the reading to Celsius.
func (r Reading) Celsius() Celsius {
	switch r.Scale {
	case ScaleFahrenheit:
		return FToC(Fahrenheit(r.Value))
	case ScaleKelvin:
		return KToC(Kelvin(r.Value))
	default:
		return Celsius(r.Value)
	}
}

// Convert returns the reading in all three scales.
func (r Reading) Convert() (Celsius, Fahrenheit, Kelvin) {
	c := r.Celsius()
	return c, CToF(c), CToK(c)
}

// Parse reads strings like "100C", "-40F", or "273.15K". The scale letter
// is case-insensitive and may carry a degree sign ("100°C"). Temperatures
// below absolute zero are rejected.
func Parse(s string) (Reading, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Reading{}, fmt.Errorf("temperature %q needs a number and a scale (C, F, or K)", s)
	}

	var scale Scale
	switch s[len(s)-1] {
	case 'c', 'C':
		scale = ScaleCelsius
	case 'f', 'F':
		scale = ScaleFahrenheit
	case 'k', 'K':
		scale = ScaleKelvin
	default:
		return Reading{}, fmt.Errorf("temperature %q needs a scale suffix (C, F, or K)", s)
	}

	num := strings.TrimSuffix(s[:len(s)-1], "°")
	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Reading{}, fmt.Errorf("temperature %q: %q is not a number", s, num)
	}

	r := Reading{Value: value, Scale: scale}
	// Small tolerance keeps -459.67F legal despite float rounding
	if r.Celsius() < AbsoluteZeroC-1e-9 {
		return Reading{}, fmt.Errorf("%s: %w (limit %s)", r, ErrBelowAbsoluteZero, AbsoluteZeroC)
	}

	return r, nil
}
