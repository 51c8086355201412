package spatialir

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

const (
	wavFormatIEEEFloat = 3
	encodeBitDepth     = 32
	bytesPerSample     = encodeBitDepth / 8
)

var (
	errNilBuffer       = errors.New("can't add a nil buffer")
	errNoChannels      = errors.New("need at least one channel")
	errAlreadyWroteHdr = errors.New("already wrote header")
)

// Encoder serializes interleaved frames into a 32-bit IEEE float wav
// container. Chunk sizes are back-patched on Close, so the sink has to be
// seekable.
type Encoder struct {
	w   io.WriteSeeker
	buf *bytes.Buffer

	SampleRate int
	NumChans   int

	WrittenBytes     int
	frames           int
	dataChunkStarted bool
	dataChunkSizePos int
	wroteHeader      bool
}

// NewEncoder creates an encoder writing a float wav file with the given
// sample rate and channel count. Don't forget to Close() the encoder or the
// chunk sizes won't be valid.
func NewEncoder(w io.WriteSeeker, sampleRate, numChans int) *Encoder {
	return &Encoder{
		w:          w,
		buf:        bytes.NewBuffer(make([]byte, 0, IRSamples*numChans*bytesPerSample)),
		SampleRate: sampleRate,
		NumChans:   numChans,
	}
}

// AddLE serializes and adds the passed value using little endian.
func (e *Encoder) AddLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

func (e *Encoder) writeHeader() error {
	if e.wroteHeader {
		return errAlreadyWroteHdr
	}

	e.wroteHeader = true

	if e.NumChans < 1 {
		return errNoChannels
	}

	// riff ID
	err := e.AddLE(riff.RiffID)
	if err != nil {
		return err
	}
	// total size uint32, patched on Close
	err = e.AddLE(uint32(4294967295))
	if err != nil {
		return err
	}
	// wave headers
	err = e.AddLE(riff.WavFormatID)
	if err != nil {
		return err
	}
	// form
	err = e.AddLE(riff.FmtID)
	if err != nil {
		return err
	}

	return e.writeFmtChunk()
}

func (e *Encoder) writeFmtChunk() error {
	blockAlign := e.NumChans * bytesPerSample

	err := e.AddLE(uint32(16))
	if err != nil {
		return err
	}

	err = e.AddLE(uint16(wavFormatIEEEFloat))
	if err != nil {
		return err
	}

	err = e.AddLE(uint16(e.NumChans))
	if err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	err = e.AddLE(uint32(e.SampleRate))
	if err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	err = e.AddLE(uint32(e.SampleRate * blockAlign))
	if err != nil {
		return fmt.Errorf("error encoding the avg bytes per sec - %w", err)
	}

	err = e.AddLE(uint16(blockAlign))
	if err != nil {
		return err
	}

	err = e.AddLE(uint16(encodeBitDepth))
	if err != nil {
		return fmt.Errorf("error encoding bits per sample - %w", err)
	}

	return nil
}

// Write appends the frames of the passed interleaved buffer to the data
// chunk, writing the container headers first when needed. Samples are
// narrowed to float32 and clamped to [-1, 1].
func (e *Encoder) Write(buf *audio.FloatBuffer) error {
	if !e.wroteHeader {
		err := e.writeHeader()
		if err != nil {
			return err
		}
	}

	if !e.dataChunkStarted {
		// sound header
		err := e.AddLE(riff.DataFormatID)
		if err != nil {
			return fmt.Errorf("error encoding sound header %w", err)
		}

		e.dataChunkStarted = true

		// write a temporary chunksize
		e.dataChunkSizePos = e.WrittenBytes

		err = e.AddLE(uint32(4294967295))
		if err != nil {
			return fmt.Errorf("%w when writing wav data chunk size header", err)
		}
	}

	return e.addBuffer(buf)
}

func (e *Encoder) addBuffer(buf *audio.FloatBuffer) error {
	if buf == nil {
		return errNilBuffer
	}

	// stage the frames so the sink sees one write per buffer
	frameCount := buf.NumFrames()
	for i := 0; i < frameCount; i++ {
		for j := 0; j < buf.Format.NumChannels; j++ {
			val := float32(buf.Data[i*buf.Format.NumChannels+j])

			err := binary.Write(e.buf, binary.LittleEndian, clampFloat32(val, -1, 1))
			if err != nil {
				return fmt.Errorf("failed to write float32 sample: %w", err)
			}
		}

		e.frames++
	}

	if n, err := e.w.Write(e.buf.Bytes()); err != nil {
		e.WrittenBytes += n
		return fmt.Errorf("failed to write buffer: %w", err)
	}

	e.WrittenBytes += e.buf.Len()
	e.buf.Reset()

	return nil
}

// Close rewrites the placeholder sizes in the header, then flushes the file
// to disk. Note that the underlying writer is NOT being closed.
func (e *Encoder) Close() error {
	if e == nil || e.w == nil {
		return nil
	}

	// go back and write total size in header
	if _, err := e.w.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to file size position: %w", err)
	}

	err := e.AddLE(uint32(e.WrittenBytes) - 8)
	if err != nil {
		return fmt.Errorf("%w when writing the total written bytes", err)
	}

	// rewrite the audio chunk length header
	if e.dataChunkSizePos > 0 {
		if _, err := e.w.Seek(int64(e.dataChunkSizePos), io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek to data chunk size position: %w", err)
		}

		err := e.AddLE(uint32(bytesPerSample * e.NumChans * e.frames))
		if err != nil {
			return fmt.Errorf("%w when writing wav data chunk size header", err)
		}
	}

	// jump back to the end of the file.
	if _, err := e.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end of file: %w", err)
	}

	if f, ok := e.w.(*os.File); ok {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("failed to sync file: %w", err)
		}
	}

	return nil
}

// WriteFile renders resp into a wav file at path. Write failures propagate
// as-is; a partially written file may be left behind.
func WriteFile(path string, resp *Response) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer f.Close()

	enc := NewEncoder(f, resp.SampleRate, len(resp.Channels()))

	err = enc.Write(resp.Interleaved())
	if err != nil {
		return err
	}

	return enc.Close()
}

func clampFloat32(value, min, max float32) float32 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}
