package spatialir

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// analyzeFFTSize is the zero-padded transform length used when measuring a
// channel's frequency response. 8192 points give ~5.9 Hz bins at 48 kHz,
// fine enough to locate a low-pass corner.
const analyzeFFTSize = 8192

// MagnitudeResponse returns the single-sided magnitude spectrum of a
// channel, zero-padded (or truncated) to nfft points. The result holds
// nfft/2+1 bins from DC to Nyquist.
func MagnitudeResponse(channel []float64, nfft int) []float64 {
	padded := make([]float64, nfft)
	copy(padded, channel)

	fft := fourier.NewFFT(nfft)
	coeffs := fft.Coefficients(nil, padded)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}

	return mags
}

// CutoffFrequency estimates the -3 dB point of a channel's response relative
// to its DC magnitude, in Hz. It returns 0 when the response never drops
// below the threshold inside the Nyquist band, e.g. for an unfiltered
// impulse.
func CutoffFrequency(channel []float64, sampleRate int) float64 {
	mags := MagnitudeResponse(channel, analyzeFFTSize)
	threshold := mags[0] / math.Sqrt2

	for i := 1; i < len(mags); i++ {
		if mags[i] > threshold {
			continue
		}

		// interpolate between the bracketing bins
		prev, cur := mags[i-1], mags[i]

		frac := 0.0
		if prev != cur {
			frac = (prev - threshold) / (prev - cur)
		}

		return (float64(i-1) + frac) * float64(sampleRate) / analyzeFFTSize
	}

	return 0
}
