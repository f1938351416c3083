package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/godeck/diagram"
)

func TestRunWritesNamedFigures(t *testing.T) {
	out := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-out", out, "-scale", "1", diagram.TCOAnalysis, diagram.EProcurement}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	for _, name := range []string{"tco_comparison.svg", "tco_comparison.png", "eprocurement.svg", "eprocurement.png"} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	assert.NoFileExists(t, filepath.Join(out, "partnership.svg"))
	assert.Contains(t, stdout.String(), "Successfully generated 2 diagrams")
}

func TestRunList(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-list"}, &stdout, &stderr))
	for _, name := range diagram.Names() {
		assert.Contains(t, stdout.String(), name)
	}
}

func TestRunUnknownFigure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"-out", t.TempDir(), "nope"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "deckdiagram:")
}
