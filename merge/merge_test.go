package merge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/godeck"
)

func writeDeck(t *testing.T, dir, name string, titles ...string) string {
	t.Helper()
	p := godeck.NewBlank()
	p.GetLayout().SetLayout(godeck.LayoutScreen16x9)
	for _, title := range titles {
		box := p.CreateSlide().CreateRichTextShape()
		box.SetBounds(1, 1, 5, 1)
		box.CreateTextRun(title).GetFont().SetSize(20)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, p.Save(path))
	return path
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	a := writeDeck(t, dir, "a.pptx", "A1", "A2")
	b := writeDeck(t, dir, "b.pptx", "B1")
	broken := filepath.Join(dir, "broken.pptx")
	require.NoError(t, os.WriteFile(broken, []byte("junk"), 0o644))
	missing := filepath.Join(dir, "missing.pptx")

	out := filepath.Join(dir, "out", "merged.pptx")
	summary, err := New(WithTitle("Part 2"), WithCreator("course")).Merge(out, []string{a, missing, b, broken})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Slides)
	assert.Equal(t, []string{a, b}, summary.Merged)
	require.Len(t, summary.Skipped, 2)
	assert.Equal(t, missing, summary.Skipped[0].Path)
	assert.Equal(t, broken, summary.Skipped[1].Path)
	assert.Positive(t, summary.Bytes)
	assert.Contains(t, summary.String(), "3 slides from 2 files (2 skipped)")

	pres, err := godeck.Open(out)
	require.NoError(t, err)
	require.Equal(t, 3, pres.GetSlideCount())
	assert.Equal(t, "Part 2", pres.GetDocumentProperties().Title)
	assert.InDelta(t, 13.333, pres.GetLayout().WidthInches(), 0.001)
	var texts []string
	for _, s := range pres.GetAllSlides() {
		texts = append(texts, s.ExtractText())
	}
	assert.Equal(t, []string{"A1", "A2", "B1"}, texts)
}

func TestMergeWithoutInputs(t *testing.T) {
	_, err := Merge(filepath.Join(t.TempDir(), "out.pptx"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoInputs))
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
}

func TestCollectInputsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "b.pptx", "B")
	writeDeck(t, dir, "a.pptx", "A")
	writeDeck(t, dir, "~$a.pptx", "lock")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pptx"), 0o755))

	files, err := CollectInputs([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.pptx"), filepath.Join(dir, "b.pptx")}, files)
}

func TestCollectInputsExplicitFiles(t *testing.T) {
	files, err := CollectInputs([]string{"x.pptx", "y.pptx"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.pptx", "y.pptx"}, files)

	files, err = CollectInputs([]string{"only.pptx"})
	require.NoError(t, err)
	assert.Equal(t, []string{"only.pptx"}, files)
}

func TestCollectInputsNone(t *testing.T) {
	_, err := CollectInputs(nil)
	assert.True(t, errors.Is(err, ErrNoInputs))

	_, err = CollectInputs([]string{t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoInputs))
	assert.Contains(t, err.Error(), "no PPTX files found")
}
