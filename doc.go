// Package spatialir synthesizes spatial crossfeed impulse responses and
// writes them as 4-channel 32-bit IEEE float WAV files.
//
// A generated file carries one impulse response per routing path, in channel
// order LL, RR, LR, RL:
//
//   - LL/RR: direct path, a unit impulse plus early reflections
//   - LR/RL: crossfeed path, delayed, attenuated and low-pass filtered to
//     model the speaker-to-opposite-ear head shadow
//
// The artifact is meant to be loaded once by a convolution engine that
// imparts spatial width onto a stereo signal. This package only produces the
// file; it performs no runtime audio processing.
//
// Typical use:
//
//	preset, err := spatialir.PresetByName("medium")
//	if err != nil {
//		return err
//	}
//
//	resp := spatialir.Generate(preset)
//	err = spatialir.WriteFile("spatial_medium.wav", resp)
package spatialir
