package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/godeck/diagram"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("input: course.md\noutput: out/course.pptx\n"))
	require.NoError(t, err)

	assert.Equal(t, "course.md", cfg.Input)
	assert.Equal(t, 48, cfg.TargetSlides)
	assert.True(t, cfg.Dense())
	assert.Equal(t, "godeck", cfg.Creator)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	q := cfg.Quality()
	assert.Equal(t, 40, q.MinSlides)
	assert.Equal(t, 10, q.TargetSize)
	assert.InDelta(t, 0.5, q.MinTargetRatio, 1e-9)
	assert.True(t, q.CheckGoverning)
	require.NoError(t, q.Validate())
}

func TestParseOverrides(t *testing.T) {
	doc := `
input: course.md
output: course.pptx
title: 구매 전략
target_slides: 30
layout: Sparse
objectives: [첫째, 둘째]
diagrams:
  5: bottleneck_process
  9: tco_comparison
verify:
  min_slides: 25
  governing: false
logging:
  level: DEBUG
  format: json
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "구매 전략", cfg.Title)
	assert.Equal(t, 30, cfg.TargetSlides)
	assert.False(t, cfg.Dense())
	assert.Equal(t, []string{"첫째", "둘째"}, cfg.Objectives)
	assert.Equal(t, map[int]string{5: diagram.BottleneckProcess, 9: diagram.TCOAnalysis}, cfg.Diagrams)
	assert.Equal(t, "debug", cfg.Logging.Level)

	q := cfg.Quality()
	assert.Equal(t, 25, q.MinSlides)
	assert.False(t, q.CheckGoverning)
	assert.Equal(t, 10, q.TargetSize, "unset verify fields keep their defaults")
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing input":   "output: a.pptx\n",
		"missing output":  "input: a.md\n",
		"wrong extension": "input: a.md\noutput: a.ppt\n",
		"bad layout":      "input: a.md\noutput: a.pptx\nlayout: grid\n",
		"bad diagram":     "input: a.md\noutput: a.pptx\ndiagrams:\n  3: nope\n",
		"bad slide":       "input: a.md\noutput: a.pptx\ndiagrams:\n  0: tco_comparison\n",
		"bad ratio":       "input: a.md\noutput: a.pptx\nverify:\n  min_ratio: 2\n",
		"bad format":      "input: a.md\noutput: a.pptx\nlogging:\n  format: xml\n",
		"not yaml":        "input: [unclosed\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	abs := filepath.Join(dir, "abs.pptx")
	doc := "input: docs/course.md\noutput: " + abs + "\nfont_dirs: [fonts]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs", "course.md"), cfg.Input)
	assert.Equal(t, abs, cfg.Output)
	assert.Equal(t, []string{filepath.Join(dir, "fonts")}, cfg.FontDirs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
