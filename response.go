package spatialir

import (
	"time"

	"github.com/go-audio/audio"
)

// Channel roles inside the generated artifact, in file order.
const (
	ChannelLL = iota // direct left to left
	ChannelRR        // direct right to right, mirror of LL
	ChannelLR        // crossfeed left to right
	ChannelRL        // crossfeed right to left, mirror of LR
)

// Response is a synthesized 4-channel impulse response set.
type Response struct {
	Preset     string
	SampleRate int

	// One buffer per routing path, all IRSamples long.
	LL, RR, LR, RL []float64
}

// Generate synthesizes the impulse response set for the given preset.
//
// The speaker layout is assumed symmetric, so the right-hand paths mirror
// the left-hand ones: RR and RL are value copies of LL and LR rather than
// independent renders, which keeps the mirrored pairs bit-identical.
func Generate(preset Preset) *Response {
	ll := synthesizeChannel(preset.DirectGain, preset.Reflections, false, 0, 0)
	lr := synthesizeChannel(preset.CrossGain, preset.CrossReflections, true,
		preset.CrossDelayMS, preset.CrossLPFFreq)

	return &Response{
		Preset:     preset.Name,
		SampleRate: SampleRate,
		LL:         ll,
		RR:         append([]float64(nil), ll...),
		LR:         lr,
		RL:         append([]float64(nil), lr...),
	}
}

// Channels returns the channel buffers in file order.
func (r *Response) Channels() [][]float64 {
	return [][]float64{r.LL, r.RR, r.LR, r.RL}
}

// Duration returns the impulse response length.
func (r *Response) Duration() time.Duration {
	return time.Duration(len(r.LL)) * time.Second / time.Duration(r.SampleRate)
}

// Interleaved flattens the channels into a single frame-interleaved buffer:
// one frame per time step, samples in channel order within a frame. This is
// the layout the Encoder serializes and the layout convolution engines
// expect.
func (r *Response) Interleaved() *audio.FloatBuffer {
	channels := r.Channels()
	numChans := len(channels)
	data := make([]float64, len(r.LL)*numChans)

	for i := range r.LL {
		for ch, c := range channels {
			data[i*numChans+ch] = c[i]
		}
	}

	return &audio.FloatBuffer{
		Format: &audio.Format{
			NumChannels: numChans,
			SampleRate:  r.SampleRate,
		},
		Data: data,
	}
}
