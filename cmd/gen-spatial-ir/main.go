// Command gen-spatial-ir renders a spatial crossfeed impulse response set
// and stores it as a 4-channel 32-bit float wav file for a convolution
// engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/spatialir"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("gen-spatial-ir", flag.ContinueOnError)

	intensity := flagSet.String("intensity", "medium", "spatial effect intensity (light, medium, heavy)")
	output := flagSet.String("output", "", "output wav path (default spatial_<intensity>.wav)")
	aiffCopy := flagSet.Bool("aiff", false, "also write a 16-bit aiff copy next to the wav file")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	preset, err := spatialir.PresetByName(*intensity)
	if err != nil {
		return err
	}

	outPath := *output
	if outPath == "" {
		outPath = defaultOutputPath(preset.Name)
	}

	resp := spatialir.Generate(preset)

	err = spatialir.WriteFile(outPath, resp)
	if err != nil {
		return err
	}

	fi, err := os.Stat(outPath)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", outPath, err)
	}

	fmt.Fprintf(out, "Generated: %s\n", outPath)
	fmt.Fprintf(out, "  Preset:      %s\n", preset.Name)
	fmt.Fprintf(out, "  Channels:    %d (LL, RR, LR, RL)\n", spatialir.NumChannels)
	fmt.Fprintf(out, "  Sample rate: %d Hz\n", resp.SampleRate)
	fmt.Fprintf(out, "  Duration:    %d ms (%d samples)\n", spatialir.DurationMS, spatialir.IRSamples)
	fmt.Fprintf(out, "  Size:        %.1f KB\n", float64(fi.Size())/1024)

	if *aiffCopy {
		aiffPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".aif"

		err := writeAIFF(aiffPath, resp)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "  AIFF copy:   %s\n", aiffPath)
	}

	return nil
}

func defaultOutputPath(presetName string) string {
	return fmt.Sprintf("spatial_%s.wav", presetName)
}

const aiffBitDepth = 16

func writeAIFF(path string, resp *spatialir.Response) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer f.Close()

	buf := resp.Interleaved()

	intBuf := &audio.IntBuffer{
		Format:         buf.Format,
		SourceBitDepth: aiffBitDepth,
		Data:           make([]int, len(buf.Data)),
	}
	for i, v := range buf.Data {
		intBuf.Data[i] = floatToPCMInt16(v)
	}

	enc := aiff.NewEncoder(f, buf.Format.SampleRate, aiffBitDepth, buf.Format.NumChannels)

	err = enc.Write(intBuf)
	if err != nil {
		return fmt.Errorf("failed to write aiff frames: %w", err)
	}

	return enc.Close()
}

func floatToPCMInt16(value float64) int {
	if value < -1 {
		value = -1
	}

	if value > 1 {
		value = 1
	}

	sample := int(math.Round(value * 32768.0))
	if sample > 32767 {
		sample = 32767
	}

	if sample < -32768 {
		sample = -32768
	}

	return sample
}
