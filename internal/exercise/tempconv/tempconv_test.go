package tempconv

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amar-at-iitm/primer/internal/exercise"
)

func TestConversions(t *testing.T) {
	testCases := []struct {
		name string
		c    Celsius
		f    Fahrenheit
		k    Kelvin
	}{
		{"boiling", 100, 212, 373.15},
		{"freezing", 0, 32, 273.15},
		{"crossover", -40, -40, 233.15},
		{"absolute zero", -273.15, -459.67, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, float64(tc.f), float64(CToF(tc.c)), 1e-9)
			assert.InDelta(t, float64(tc.k), float64(CToK(tc.c)), 1e-9)
			assert.InDelta(t, float64(tc.c), float64(FToC(tc.f)), 1e-9)
			assert.InDelta(t, float64(tc.k), float64(FToK(tc.f)), 1e-9)
			assert.InDelta(t, float64(tc.c), float64(KToC(tc.k)), 1e-9)
			assert.InDelta(t, float64(tc.f), float64(KToF(tc.k)), 1e-9)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "100°C", BoilingC.String())
	assert.Equal(t, "-40°F", Fahrenheit(-40).String())
	assert.Equal(t, "273.15K", Kelvin(273.15).String())

	// Chained conversions carry float noise that must not leak into output.
	assert.Equal(t, "233.15K", FToK(-40).String())
	assert.Equal(t, "37°C", FToC(98.6).String())
}

func TestParse(t *testing.T) {
	testCases := []struct {
		input     string
		wantValue float64
		wantScale Scale
	}{
		{"100C", 100, ScaleCelsius},
		{"-40F", -40, ScaleFahrenheit},
		{"273.15K", 273.15, ScaleKelvin},
		{"37c", 37, ScaleCelsius},
		{"98.6f", 98.6, ScaleFahrenheit},
		{"  0C  ", 0, ScaleCelsius},
		{"100°C", 100, ScaleCelsius},
		{"-459.67F", -459.67, ScaleFahrenheit},
		{"0K", 0, ScaleKelvin},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			r, err := Parse(tc.input)
			require.NoError(t, err)
			assert.InDelta(t, tc.wantValue, r.Value, 1e-9)
			assert.Equal(t, tc.wantScale, r.Scale)
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no scale", "100"},
		{"unknown scale", "100X"},
		{"not a number", "warmC"},
		{"bare scale", "C"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsBelowAbsoluteZero(t *testing.T) {
	for _, input := range []string{"-274C", "-500F", "-1K"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrBelowAbsoluteZero)
		})
	}
}

func TestReadingString(t *testing.T) {
	assert.Equal(t, "100°C", Reading{Value: 100, Scale: ScaleCelsius}.String())
	assert.Equal(t, "-40°F", Reading{Value: -40, Scale: ScaleFahrenheit}.String())
	assert.Equal(t, "300K", Reading{Value: 300, Scale: ScaleKelvin}.String())
}

func runnerStreams(input string) (exercise.IO, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return exercise.IO{In: strings.NewReader(input), Out: out, Err: out}, out
}

func TestRunnerInfo(t *testing.T) {
	info := Runner{}.Info()
	assert.Equal(t, "tempconv", info.Slug)
	assert.Equal(t, 3, info.Chapter)
}

func TestRunnerConvertsArgs(t *testing.T) {
	streams, out := runnerStreams("")
	err := Runner{}.Run(context.Background(), streams, []string{"100C", "-40F"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "100°C = 212°F = 373.15K")
	assert.Contains(t, text, "-40°F = -40°C = 233.15K")
}

func TestRunnerNoArgsShowsReference(t *testing.T) {
	streams, out := runnerStreams("")
	require.NoError(t, Runner{}.Run(context.Background(), streams, nil))

	text := out.String()
	assert.Contains(t, text, "-273.15°C")
	assert.Contains(t, text, "100°C = 212°F")
	assert.Contains(t, text, "primer run tempconv")
}

func TestRunnerBadInput(t *testing.T) {
	streams, _ := runnerStreams("")
	err := Runner{}.Run(context.Background(), streams, []string{"warm"})
	assert.Error(t, err)
}
