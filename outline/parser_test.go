package outline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMarkdown(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSimpleSection(t *testing.T) {
	sections, err := Parse(writeMarkdown(t, "## Title\n- item one\n- item two\n"))
	require.NoError(t, err)
	require.Len(t, sections, 1)

	s := sections[0]
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, "Title", s.Title)
	assert.Equal(t, []string{"item one", "item two"}, s.Bullets)
	assert.Empty(t, s.AsideBlocks)
	assert.Empty(t, s.Tables)
	assert.Equal(t, 1, s.LineStart)
	assert.Equal(t, 3, s.LineEnd)
	assert.Equal(t, []string{"- item one", "- item two"}, s.ContentLines)
}

func TestParseSectionsInOrderWithLineSpans(t *testing.T) {
	src := strings.Join([]string{
		"# Course",    // 1, level 1 is not a section
		"intro text",  // 2, dropped
		"## Part one", // 3
		"body",        // 4
		"### Detail",  // 5
		"#### Deeper", // 6, content of Detail
		"## Part two", // 7
	}, "\n")

	sections, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, []string{"Part one", "Detail", "Part two"},
		[]string{sections[0].Title, sections[1].Title, sections[2].Title})
	assert.Equal(t, []int{2, 3, 2}, []int{sections[0].Level, sections[1].Level, sections[2].Level})
	assert.Equal(t, 3, sections[0].LineStart)
	assert.Equal(t, 4, sections[0].LineEnd)
	assert.Equal(t, []string{"#### Deeper"}, sections[1].ContentLines)
	// A heading without content spans only its own line.
	assert.Equal(t, 7, sections[2].LineStart)
	assert.Equal(t, 7, sections[2].LineEnd)
	for _, s := range sections {
		assert.LessOrEqual(t, s.LineStart, s.LineEnd)
	}
}

func TestParseDropsContentBeforeFirstHeading(t *testing.T) {
	src := "- stray bullet\n| a | b |\n<aside>\nlost\n</aside>\n## First\ntext\n"
	sections, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Empty(t, sections[0].Bullets)
	assert.Empty(t, sections[0].Tables)
	assert.Empty(t, sections[0].AsideBlocks)
}

func TestParseBullets(t *testing.T) {
	src := "## S\n- one\n  * two  \n- **Bold header**\n-\n- \n-no space\n"
	sections, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, sections[0].Bullets)
}

func TestParseUnicodeSpacesAfterMarkers(t *testing.T) {
	src := "## 첫 장\n- 하나\n##\u3000전각 제목\n-\u00a0둘\n\u3000*\u3000셋\n"
	sections, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, []string{"하나"}, sections[0].Bullets)
	assert.Equal(t, "전각 제목", sections[1].Title)
	assert.Equal(t, []string{"둘", "셋"}, sections[1].Bullets)
}

func TestParseAsideFiltersEmojiAndBlankLines(t *testing.T) {
	src := "## S\n<aside>\n💡\n\n  핵심 메시지입니다.  \n⚠️\n- 세부 항목\n</aside>\n"
	sections, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, []string{"핵심 메시지입니다.\n- 세부 항목"}, sections[0].AsideBlocks)
	// Bullets inside asides still count.
	assert.Equal(t, []string{"세부 항목"}, sections[0].Bullets)
}

func TestParseAsideDropsBareVariationSelector(t *testing.T) {
	sections, err := ParseReader(strings.NewReader("## S\n<aside>\n\uFE0F\n본문\n</aside>\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"본문"}, sections[0].AsideBlocks)
}

func TestParseEmptyAsideAddsNothing(t *testing.T) {
	sections, err := ParseReader(strings.NewReader("## S\n<aside>\n🎯\n</aside>\n"))
	require.NoError(t, err)
	assert.Empty(t, sections[0].AsideBlocks)
}

func TestParseAsideSpanningHeadingLandsWhereItCloses(t *testing.T) {
	src := "## A\n<aside>\nfirst\n## B\nsecond\n</aside>\n"
	sections, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Empty(t, sections[0].AsideBlocks)
	assert.Equal(t, []string{"first\nsecond"}, sections[1].AsideBlocks)
}

func TestParseUnterminatedAsideIsDropped(t *testing.T) {
	path := writeMarkdown(t, "## A\ntext\n<aside>\nnever closed\n")
	doc, err := ParseDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Empty(t, doc.Sections[0].AsideBlocks)
	assert.Equal(t, 3, doc.Unterminated)
}

func TestParseTables(t *testing.T) {
	src := "## T\n| 구분 | 내용 |\n|---|---|\n| A | B |\ntext\n  | C | D |  \n"
	sections, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sections[0].Tables, 1)
	assert.Equal(t, []string{"| 구분 | 내용 |", "| A | B |", "| C | D |"}, sections[0].Tables[0])
}

func TestParseHandlesCRLFAndBOM(t *testing.T) {
	src := "\uFEFF## Title\r\n- item\r\n"
	sections, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Title", sections[0].Title)
	assert.Equal(t, []string{"item"}, sections[0].Bullets)
}

func TestParseNormalisesToNFC(t *testing.T) {
	// "한" written as conjoining jamo (NFD).
	sections, err := ParseReader(strings.NewReader("## \u1112\u1161\u11AB\n"))
	require.NoError(t, err)
	assert.Equal(t, "한", sections[0].Title)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
}

func TestParseInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.md")
	require.NoError(t, os.WriteFile(path, []byte("## ok\n\xff\xfe\n"), 0o644))
	_, err := Parse(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestParseDocumentFrontMatterKeepsLineNumbers(t *testing.T) {
	src := "---\ntitle: 구매 전략\nsession: \"1\"\ntags: [kraljic]\n---\n## 첫 장\n- 항목\n"
	doc, err := ParseDocument(writeMarkdown(t, src))
	require.NoError(t, err)

	assert.Equal(t, "구매 전략", doc.Meta.Title)
	assert.Equal(t, "1", doc.Meta.Session)
	assert.Equal(t, []string{"kraljic"}, doc.Meta.Tags)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, 6, doc.Sections[0].LineStart)
	assert.Equal(t, 7, doc.Sections[0].LineEnd)
	assert.Len(t, doc.Chapters(), 1)
}

func TestParseEmptyInput(t *testing.T) {
	sections, err := ParseReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, sections)
}
