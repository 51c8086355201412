package spatialir

import (
	"errors"
	"fmt"
	"strings"
)

// Reflection is a single early reflection tap on an impulse response path.
type Reflection struct {
	// DelayMS is the tap position in milliseconds after the primary impulse
	// of the direct path.
	DelayMS float64
	// Gain is the unsigned tap amplitude; the synthesizer alternates the
	// sign of consecutive taps.
	Gain float64
}

// Preset bundles the synthesis parameters for one spatial intensity level.
type Preset struct {
	Name string

	// Direct path (LL/RR).
	DirectGain  float64
	Reflections []Reflection

	// Crossfeed path (LR/RL). CrossDelayMS is the interaural time delay and
	// CrossLPFFreq the head shadow low-pass cutoff in Hz (0 disables the
	// filter).
	CrossGain        float64
	CrossDelayMS     float64
	CrossLPFFreq     float64
	CrossReflections []Reflection
}

// ErrUnknownPreset is returned when a preset name has no built-in definition.
var ErrUnknownPreset = errors.New("unknown preset")

// Built-in intensity levels, ordered from subtle to aggressive.
var presets = []Preset{
	{
		Name:       "light",
		DirectGain: 1.0,
		Reflections: []Reflection{
			{DelayMS: 1.8, Gain: 0.08},
			{DelayMS: 5.2, Gain: 0.05},
			{DelayMS: 11.0, Gain: 0.03},
		},
		CrossGain:    0.15,
		CrossDelayMS: 0.25,
		CrossLPFFreq: 3000,
		CrossReflections: []Reflection{
			{DelayMS: 3.5, Gain: 0.04},
			{DelayMS: 8.0, Gain: 0.02},
		},
	},
	{
		Name:       "medium",
		DirectGain: 1.0,
		Reflections: []Reflection{
			{DelayMS: 1.5, Gain: 0.12},
			{DelayMS: 3.8, Gain: 0.09},
			{DelayMS: 6.5, Gain: 0.06},
			{DelayMS: 10.2, Gain: 0.04},
			{DelayMS: 15.0, Gain: 0.025},
		},
		CrossGain:    0.25,
		CrossDelayMS: 0.30,
		CrossLPFFreq: 2500,
		CrossReflections: []Reflection{
			{DelayMS: 2.8, Gain: 0.06},
			{DelayMS: 6.0, Gain: 0.04},
			{DelayMS: 12.0, Gain: 0.02},
		},
	},
	{
		Name:       "heavy",
		DirectGain: 1.0,
		Reflections: []Reflection{
			{DelayMS: 1.2, Gain: 0.18},
			{DelayMS: 3.0, Gain: 0.14},
			{DelayMS: 5.5, Gain: 0.10},
			{DelayMS: 8.0, Gain: 0.07},
			{DelayMS: 12.0, Gain: 0.05},
			{DelayMS: 18.0, Gain: 0.035},
			{DelayMS: 25.0, Gain: 0.02},
		},
		CrossGain:    0.35,
		CrossDelayMS: 0.35,
		CrossLPFFreq: 2000,
		CrossReflections: []Reflection{
			{DelayMS: 2.2, Gain: 0.10},
			{DelayMS: 5.0, Gain: 0.06},
			{DelayMS: 9.0, Gain: 0.04},
			{DelayMS: 15.0, Gain: 0.02},
		},
	},
}

// PresetNames returns the built-in preset names in increasing intensity
// order.
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}

	return names
}

// PresetByName looks up a built-in preset by name. The returned preset is a
// copy and safe to modify. Unknown names yield an error wrapping
// ErrUnknownPreset that lists the valid choices.
func PresetByName(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p.clone(), nil
		}
	}

	return Preset{}, fmt.Errorf("%w: %q, choose from: %s",
		ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
}

func (p Preset) clone() Preset {
	c := p
	c.Reflections = append([]Reflection(nil), p.Reflections...)
	c.CrossReflections = append([]Reflection(nil), p.CrossReflections...)

	return c
}
