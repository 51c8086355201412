package spatialir

import (
	"testing"
	"time"
)

func TestGenerateBufferLengths(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			p, err := PresetByName(name)
			if err != nil {
				t.Fatal(err)
			}

			resp := Generate(p)

			for ch, buf := range resp.Channels() {
				if len(buf) != IRSamples {
					t.Errorf("channel %d length=%d, want %d", ch, len(buf), IRSamples)
				}
			}
		})
	}
}

func TestGenerateMirroredChannels(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			p, err := PresetByName(name)
			if err != nil {
				t.Fatal(err)
			}

			resp := Generate(p)

			for i := range resp.LL {
				if resp.RR[i] != resp.LL[i] {
					t.Fatalf("RR[%d]=%v differs from LL[%d]=%v", i, resp.RR[i], i, resp.LL[i])
				}
			}

			for i := range resp.LR {
				if resp.RL[i] != resp.LR[i] {
					t.Fatalf("RL[%d]=%v differs from LR[%d]=%v", i, resp.RL[i], i, resp.LR[i])
				}
			}
		})
	}
}

func TestGenerateMirrorsAreIndependent(t *testing.T) {
	p, err := PresetByName("light")
	if err != nil {
		t.Fatal(err)
	}

	resp := Generate(p)

	resp.RR[0] = 42
	if resp.LL[0] == 42 {
		t.Error("RR aliases LL, want an independent copy")
	}

	resp.RL[0] = 42
	if resp.LR[0] == 42 {
		t.Error("RL aliases LR, want an independent copy")
	}
}

func TestGenerateCrossChannelIsFiltered(t *testing.T) {
	p, err := PresetByName("medium")
	if err != nil {
		t.Fatal(err)
	}

	resp := Generate(p)

	// 0.3 ms interaural delay -> index 14; everything before is silent
	for i := 0; i < 14; i++ {
		if resp.LR[i] != 0 {
			t.Fatalf("LR[%d]=%v, want silence before the interaural delay", i, resp.LR[i])
		}
	}

	if resp.LR[14] <= 0 {
		t.Fatalf("LR[14]=%v, want the filtered impulse onset", resp.LR[14])
	}

	// the low-pass smears the impulse, so the next samples carry energy too
	if resp.LR[15] <= 0 || resp.LR[16] <= 0 {
		t.Errorf("LR[15..16]=%v,%v, want a decaying filter tail", resp.LR[15], resp.LR[16])
	}

	if resp.LR[15] >= resp.LR[14] {
		t.Errorf("LR[15]=%v should decay below LR[14]=%v", resp.LR[15], resp.LR[14])
	}
}

func TestResponseDuration(t *testing.T) {
	p, err := PresetByName("medium")
	if err != nil {
		t.Fatal(err)
	}

	if d := Generate(p).Duration(); d != 80*time.Millisecond {
		t.Errorf("duration=%s, want 80ms", d)
	}
}

func TestInterleavedOrdering(t *testing.T) {
	resp := &Response{
		Preset:     "test",
		SampleRate: SampleRate,
		LL:         []float64{0.1, 0.2},
		RR:         []float64{0.3, 0.4},
		LR:         []float64{0.5, 0.6},
		RL:         []float64{0.7, 0.8},
	}

	buf := resp.Interleaved()

	if buf.Format.NumChannels != NumChannels {
		t.Fatalf("channels=%d, want %d", buf.Format.NumChannels, NumChannels)
	}

	if buf.Format.SampleRate != SampleRate {
		t.Fatalf("sample rate=%d, want %d", buf.Format.SampleRate, SampleRate)
	}

	// time-then-channel: frame 0 holds every channel's sample 0
	want := []float64{0.1, 0.3, 0.5, 0.7, 0.2, 0.4, 0.6, 0.8}
	if len(buf.Data) != len(want) {
		t.Fatalf("data length=%d, want %d", len(buf.Data), len(want))
	}

	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("data[%d]=%v, want %v", i, buf.Data[i], want[i])
		}
	}
}
