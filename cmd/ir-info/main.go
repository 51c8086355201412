// Command ir-info prints format details about a generated impulse response
// wav file, including the measured crossfeed roll-off.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/wav"

	"github.com/cwbudde/spatialir"
)

const missingPathMessage = "You must pass the path of the file to inspect"

var errMissingPath = errors.New("missing path argument")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	if !dec.IsValidFile() {
		return fmt.Errorf("%s is not a valid wav file", args[0])
	}

	dur, err := dec.Duration()
	if err != nil {
		return fmt.Errorf("failed to compute the duration: %w", err)
	}

	fmt.Fprintf(out, "Format:      %d (%s)\n", dec.WavAudioFormat, formatName(dec.WavAudioFormat))
	fmt.Fprintf(out, "Channels:    %d\n", dec.NumChans)
	fmt.Fprintf(out, "Sample rate: %d Hz\n", dec.SampleRate)
	fmt.Fprintf(out, "Bit depth:   %d\n", dec.BitDepth)
	fmt.Fprintf(out, "Duration:    %s\n", dur)

	if !isSpatialIRLayout(dec) {
		return nil
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind %s: %w", args[0], err)
	}

	buf, err := spatialir.DecodeFloat(file)
	if err != nil {
		return err
	}

	cross := deinterleave(buf.Data, buf.Format.NumChannels, spatialir.ChannelLR)
	cutoff := spatialir.CutoffFrequency(cross, buf.Format.SampleRate)

	fmt.Fprintf(out, "Crossfeed -3 dB: %.0f Hz\n", cutoff)

	return nil
}

// isSpatialIRLayout reports whether the file looks like a generated
// crossfeed artifact worth analyzing.
func isSpatialIRLayout(dec *wav.Decoder) bool {
	return dec.WavAudioFormat == 3 &&
		dec.BitDepth == 32 &&
		int(dec.NumChans) == spatialir.NumChannels
}

func deinterleave(data []float64, numChans, channel int) []float64 {
	samples := make([]float64, 0, len(data)/numChans)
	for i := channel; i < len(data); i += numChans {
		samples = append(samples, data[i])
	}

	return samples
}

func formatName(tag uint16) string {
	switch tag {
	case 1:
		return "PCM"
	case 3:
		return "IEEE float"
	default:
		return "other"
	}
}
