package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/spatialir"
)

func generateTestFile(t *testing.T, intensity string) string {
	t.Helper()

	preset, err := spatialir.PresetByName(intensity)
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "spatial_"+intensity+".wav")
	require.NoError(t, spatialir.WriteFile(outPath, spatialir.Generate(preset)))

	return outPath
}

func TestRunPrintsFormatDetails(t *testing.T) {
	outPath := generateTestFile(t, "medium")

	var out bytes.Buffer

	err := run([]string{outPath}, &out)
	require.NoError(t, err)

	report := out.String()
	assert.Contains(t, report, "Format:      3 (IEEE float)")
	assert.Contains(t, report, "Channels:    4")
	assert.Contains(t, report, "Sample rate: 48000 Hz")
	assert.Contains(t, report, "Bit depth:   32")
	assert.Contains(t, report, "Duration:    80ms")
	assert.Contains(t, report, "Crossfeed -3 dB:")
}

func TestRunMissingPath(t *testing.T) {
	var out bytes.Buffer

	err := run(nil, &out)
	require.ErrorIs(t, err, errMissingPath)
}

func TestRunNonExistentFile(t *testing.T) {
	var out bytes.Buffer

	err := run([]string{filepath.Join(t.TempDir(), "nope.wav")}, &out)
	require.Error(t, err)
}

func TestRunInvalidWavFile(t *testing.T) {
	junkPath := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(junkPath, []byte("not a wav file"), 0o644))

	var out bytes.Buffer

	err := run([]string{junkPath}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid wav file")
}

func TestDeinterleave(t *testing.T) {
	data := []float64{1, 2, 3, 4, 10, 20, 30, 40}

	assert.Equal(t, []float64{3, 30}, deinterleave(data, 4, 2))
	assert.Equal(t, []float64{1, 10}, deinterleave(data, 4, 0))
}
