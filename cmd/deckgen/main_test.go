package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/godeck"
)

const courseMarkdown = `---
title: 구매 전략
session: 1회차
---
## 1. 소싱 전략 개요
<aside>
소싱은 공급 리스크를 관리하는 활동입니다.
</aside>
- 공급업체 선정
- 계약 협상

## 2. 병목자재 관리
- 공급선 다변화
- 장기 계약
`

func writeRun(t *testing.T, extra string) (cfgPath, output string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "course.md"), []byte(courseMarkdown), 0o644))
	cfgPath = filepath.Join(dir, "run.yaml")
	doc := "input: course.md\noutput: out/course.pptx\nlogging:\n  level: error\n" + extra
	require.NoError(t, os.WriteFile(cfgPath, []byte(doc), 0o644))
	return cfgPath, filepath.Join(dir, "out", "course.pptx")
}

func TestRunBuildsAndVerifiesDeck(t *testing.T) {
	cfgPath, output := writeRun(t, "")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-config", cfgPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "2개 섹션")
	assert.Contains(t, stdout.String(), "✓ 슬라이드 48: ")
	assert.Contains(t, stdout.String(), "✅ 저장 완료")
	assert.Contains(t, stdout.String(), "✅ 모든 필수 검증 통과!")

	pres, err := godeck.Open(output)
	require.NoError(t, err)
	assert.Equal(t, 48, pres.GetSlideCount())
	assert.Equal(t, "구매 전략", pres.GetDocumentProperties().Title)
}

func TestRunOutlineOnly(t *testing.T) {
	cfgPath, output := writeRun(t, "target_slides: 12\n")
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run([]string{"-config", cfgPath, "-outline"}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "[1/12]")
	assert.Contains(t, stdout.String(), "[12/12]")
	assert.NoFileExists(t, output)
}

func TestRunEmbedsDiagrams(t *testing.T) {
	cfgPath, output := writeRun(t, "diagrams:\n  5: bottleneck_process\nverify:\n  skip: true\n")
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run([]string{"-config", cfgPath}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "슬라이드 5: bottleneck_process")
	assert.NotContains(t, stdout.String(), "PPTX 품질 검증 결과")

	pres, err := godeck.Open(output)
	require.NoError(t, err)
	slide, err := pres.GetSlide(4)
	require.NoError(t, err)
	pictures := 0
	for _, sh := range slide.GetShapes() {
		if sh.GetType() == godeck.ShapeTypeDrawing {
			pictures++
		}
	}
	assert.Equal(t, 1, pictures)
}

func TestRunConfigErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"-config", filepath.Join(t.TempDir(), "none.yaml")}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "deckgen:")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("input: a.md\n"), 0o644))
	stderr.Reset()
	assert.Equal(t, 1, run([]string{"-config", bad}, &stdout, &stderr))

	missingInput := filepath.Join(dir, "missing.yaml")
	require.NoError(t, os.WriteFile(missingInput, []byte("input: none.md\noutput: x.pptx\n"), 0o644))
	assert.Equal(t, 1, run([]string{"-config", missingInput}, &stdout, &stderr))
	assert.NoFileExists(t, filepath.Join(dir, "x.pptx"))
}
