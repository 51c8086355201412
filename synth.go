package spatialir

import "math"

// Process-wide synthesis parameters. The downstream convolver contract fixes
// these values; they are not configurable per call.
const (
	// SampleRate is the sample rate of every generated impulse response.
	SampleRate = 48000
	// DurationMS is the impulse response length in milliseconds. 80 ms is
	// enough for early reflections without growing a reverb tail.
	DurationMS = 80
	// IRSamples is the per-channel buffer length.
	IRSamples = SampleRate * DurationMS / 1000
	// NumChannels is the channel count of the generated artifact.
	NumChannels = 4
)

// msToSamples converts a millisecond offset into a sample index. The
// conversion truncates toward zero, so tap placement quantizes to the sample
// just below a fractional offset.
func msToSamples(ms float64) int {
	return int(ms * SampleRate / 1000)
}

// synthesizeChannel renders one impulse response path into a fresh
// IRSamples-long buffer.
//
// The primary impulse lands at t=0 on direct paths and at the interaural
// delay on crossfeed paths. Reflection taps are summed on top with
// alternating polarity to avoid comb-filter buildup; taps landing on the
// same index accumulate. Placements past the end of the buffer are silently
// dropped. Crossfeed paths are finally shaped in place by a single-pole
// low-pass modelling head shadow.
func synthesizeChannel(gain float64, taps []Reflection, isCross bool, crossDelayMS, crossLPFFreq float64) []float64 {
	buf := make([]float64, IRSamples)

	var pathDelayMS float64
	if isCross {
		pathDelayMS = crossDelayMS
	}

	if i := msToSamples(pathDelayMS); i >= 0 && i < len(buf) {
		buf[i] = gain
	}

	for n, tap := range taps {
		i := msToSamples(tap.DelayMS + pathDelayMS)
		if i < 0 || i >= len(buf) {
			continue
		}

		polarity := 1.0
		if n%2 == 1 {
			polarity = -1.0
		}

		buf[i] += tap.Gain * polarity
	}

	if isCross && crossLPFFreq > 0 {
		lowpass(buf, crossLPFFreq, SampleRate)
	}

	return buf
}

// lowpass applies a first-order RC low-pass in place, in time order, with
// the filter state starting at zero.
func lowpass(buf []float64, cutoffHz, sampleRate float64) {
	rc := 1 / (2 * math.Pi * cutoffHz)
	dt := 1 / sampleRate
	alpha := dt / (rc + dt)

	var state float64
	for i, x := range buf {
		state += alpha * (x - state)
		buf[i] = state
	}
}
