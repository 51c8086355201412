package spatialir

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// ErrDataChunkNotFound is returned when a wav stream carries no data
	// chunk.
	ErrDataChunkNotFound = errors.New("data chunk not found in audio file")

	errNotFloatFormat    = errors.New("not an IEEE float wav stream")
	errFmtChunkMissing   = errors.New("data chunk found before fmt chunk")
	errUnhandledBitDepth = errors.New("unhandled float bit depth")
)

// DecodeFloat reads a 32-bit IEEE float wav stream back into an interleaved
// buffer. It understands exactly the subset of the container the Encoder
// produces, so generated artifacts can be inspected and verified without an
// external reader.
func DecodeFloat(r io.Reader) (*audio.FloatBuffer, error) {
	p := riff.New(r)

	err := readHeaders(r, p)
	if err != nil {
		return nil, err
	}

	var (
		fmtParsed             bool
		formatTag             uint16
		numChans, bitDepth    uint16
		sampleRate, bytesRate uint32
		blockAlign            uint16
	)

	for {
		chunk, err := p.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrDataChunkNotFound
			}

			return nil, fmt.Errorf("failed to read the next chunk: %w", err)
		}

		switch chunk.ID {
		case riff.FmtID:
			for _, dst := range []any{&formatTag, &numChans, &sampleRate, &bytesRate, &blockAlign, &bitDepth} {
				if err := chunk.ReadLE(dst); err != nil {
					return nil, fmt.Errorf("failed to read the fmt chunk: %w", err)
				}
			}

			chunk.Drain()

			fmtParsed = true
		case riff.DataFormatID:
			if !fmtParsed {
				return nil, errFmtChunkMissing
			}

			if formatTag != wavFormatIEEEFloat {
				return nil, fmt.Errorf("%w: format tag %d", errNotFloatFormat, formatTag)
			}

			if bitDepth != encodeBitDepth {
				return nil, fmt.Errorf("%w: %d", errUnhandledBitDepth, bitDepth)
			}

			raw := make([]float32, chunk.Size/bytesPerSample)
			if err := chunk.ReadLE(raw); err != nil {
				return nil, fmt.Errorf("failed to read the data chunk: %w", err)
			}

			data := make([]float64, len(raw))
			for i, v := range raw {
				data[i] = float64(v)
			}

			return &audio.FloatBuffer{
				Format: &audio.Format{
					NumChannels: int(numChans),
					SampleRate:  int(sampleRate),
				},
				Data: data,
			}, nil
		default:
			chunk.Drain()
		}
	}
}

// DecodeFloatFile is a convenience wrapper decoding a float wav file from
// disk.
func DecodeFloatFile(path string) (*audio.FloatBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	return DecodeFloat(f)
}

func readHeaders(r io.Reader, p *riff.Parser) error {
	id, size, err := p.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read the riff header: %w", err)
	}

	p.ID = id
	if p.ID != riff.RiffID {
		return fmt.Errorf("%s - %w", p.ID, riff.ErrFmtNotSupported)
	}

	p.Size = size

	err = binary.Read(r, binary.BigEndian, &p.Format)
	if err != nil {
		return fmt.Errorf("failed to read the file format: %w", err)
	}

	return nil
}
