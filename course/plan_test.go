package course

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/godeck/outline"
	"github.com/VantageDataChat/godeck/quality"
	"github.com/VantageDataChat/godeck/slidespec"
)

const courseMarkdown = `---
title: 자재군별 소싱 전략
session: 2회차
subtitle: Sourcing Strategy & SRM
date: "2025"
---
# 무시되는 제목

## 1. 소싱 그룹 전략 개요
<aside>
💡
소싱은 **공급 리스크**를 관리하는 전략적 활동입니다.
</aside>
- 공급업체 선정
- 계약 협상
- **요약:** 제외됨

### 병목자재
| 구분 | 전략 |
|------|------|
| 병목 | 복수 소싱 |

## 2. 레버리지자재
- 하나
- 둘
- 셋
- 넷
- 다섯
- 여섯
`

func parseCourse(t *testing.T) *outline.Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course.md")
	require.NoError(t, os.WriteFile(path, []byte(courseMarkdown), 0o644))
	doc, err := outline.ParseDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 3)
	return doc
}

func titles(slides []slidespec.SlideSpec) []string {
	out := make([]string, len(slides))
	for i, s := range slides {
		out[i] = s.Title
	}
	return out
}

func shapesOf[T slidespec.ShapeSpec](s slidespec.SlideSpec) []T {
	var out []T
	for _, sh := range s.Shapes {
		if v, ok := sh.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestPlanStructure(t *testing.T) {
	opts := DefaultOptions()
	opts.TargetSlides = 10
	slides := PlanDocument(parseCourse(t), opts)

	assert.Equal(t, []string{
		"자재군별 소싱 전략", "학습 목표", "들어가며", "목차",
		"1. 소싱 그룹 전략 개요", "병목자재", "2. 레버리지자재",
		"슬라이드 8", "슬라이드 9", "슬라이드 10",
	}, titles(slides))
}

func TestPlanCapsAtTarget(t *testing.T) {
	opts := DefaultOptions()
	opts.TargetSlides = 5
	slides := PlanDocument(parseCourse(t), opts)
	require.Len(t, slides, 5)
	assert.Equal(t, "1. 소싱 그룹 전략 개요", slides[4].Title)

	opts.TargetSlides = 0
	assert.Len(t, PlanDocument(parseCourse(t), opts), 7)
}

func TestPlanContentSlide(t *testing.T) {
	slides := PlanDocument(parseCourse(t), DefaultOptions())
	first := slides[4]

	boxes := shapesOf[slidespec.TextBox](first)
	require.GreaterOrEqual(t, len(boxes), 2)
	assert.Equal(t, []string{"1. 소싱 그룹 전략 개요"}, boxes[0].Lines)
	assert.Equal(t, slidespec.RoleTitle, boxes[0].Style.Role)
	assert.Equal(t, []string{"소싱은 공급 리스크를 관리하는 전략적 활동입니다."}, boxes[1].Lines)
	assert.Equal(t, slidespec.RoleGoverning, boxes[1].Style.Role)
	assert.True(t, boxes[1].Style.Bold)

	var steps []string
	for _, r := range shapesOf[slidespec.Rectangle](first) {
		if r.Shape == slidespec.RectRounded {
			steps = append(steps, r.Lines...)
		}
	}
	assert.Equal(t, []string{"공급업체 선정", "계약 협상"}, steps)
	assert.Len(t, shapesOf[slidespec.Arrow](first), 1)

	// No aside and no bullets: defaults.
	detail := slides[5]
	assert.Equal(t, []string{DefaultGoverning}, shapesOf[slidespec.TextBox](detail)[1].Lines)
	tables := shapesOf[slidespec.Table](detail)
	require.Len(t, tables, 1)
	assert.Equal(t, [][]string{{"구분", "전략"}, {"병목", "복수 소싱"}}, tables[0].Rows)

	// Bullets are capped at five.
	capped := slides[6]
	var numbers []string
	for _, r := range shapesOf[slidespec.Rectangle](capped) {
		if r.Shape == slidespec.RectEllipse {
			numbers = append(numbers, r.Lines...)
		}
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, numbers)
	assert.GreaterOrEqual(t, len(capped.Shapes), 15)
}

func TestPlanSparseLayout(t *testing.T) {
	opts := DefaultOptions()
	opts.Dense = false
	slides := PlanDocument(parseCourse(t), opts)
	capped := slides[6]
	boxes := shapesOf[slidespec.TextBox](capped)
	require.Len(t, boxes, 3)
	assert.True(t, boxes[2].Bullets)
	assert.Len(t, boxes[2].Lines, 5)
	assert.Empty(t, shapesOf[slidespec.Arrow](capped))
}

func TestPlanGoverningTruncation(t *testing.T) {
	long := strings.Repeat("가", 150)
	msg := governingMessage(outline.Section{AsideBlocks: []string{long}})
	assert.Equal(t, 100, len([]rune(msg)))
}

func TestPlanDiagrams(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	opts := DefaultOptions()
	opts.Diagrams = map[int][]byte{5: buf.Bytes(), 7: []byte("not png")}
	slides := PlanDocument(parseCourse(t), opts)

	pics := shapesOf[slidespec.Picture](slides[4])
	require.Len(t, pics, 1)
	assert.InDelta(t, 6.0, pics[0].Frame.W, 1e-9)
	assert.InDelta(t, 4.0, pics[0].Frame.H, 1e-9)
	assert.Empty(t, shapesOf[slidespec.Picture](slides[6]))
}

func TestPlanObjectivesAndContents(t *testing.T) {
	opts := DefaultOptions()
	opts.Objectives = []string{"a", "b", "c", "d", "e"}
	slides := PlanDocument(parseCourse(t), opts)

	assert.Len(t, shapesOf[slidespec.Rectangle](slides[1]), 4)
	toc := shapesOf[slidespec.TextBox](slides[3])
	assert.Equal(t, []string{"1. 소싱 그룹 전략 개요"}, toc[2].Lines)
	assert.Equal(t, []string{"2. 레버리지자재"}, toc[3].Lines)
}

func TestPlannedDeckPassesVerification(t *testing.T) {
	slides := PlanDocument(parseCourse(t), DefaultOptions())
	require.Len(t, slides, DefaultTargetSlides)

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, slidespec.RenderFile(slidespec.NewPPTXRenderer(), path, slidespec.DefaultStyle(), slides))

	res := quality.Verify(path)
	assert.True(t, res.Passed, res.Errors)
	assert.Equal(t, DefaultTargetSlides, res.Stats[quality.StatSlideCount])
	for _, w := range res.Warnings {
		assert.NotContains(t, w, "거버닝", "slides 2-6 carry governing messages")
		assert.NotContains(t, w, "슬라이드 개수")
	}
}
