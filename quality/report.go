package quality

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

var rule = strings.Repeat("=", 80)

// statOrder fixes the printing order of the well-known stats keys; unknown
// keys follow in lexical order.
var statOrder = []string{StatDimensions, StatSlideCount, StatTotalTextRuns, StatSizeDistribution}

// Report writes the human readable summary block for r.
func Report(w io.Writer, r Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nPPTX 품질 검증 결과\n%s\n\n", rule, rule)

	b.WriteString("📊 통계:\n")
	for _, key := range statKeys(r.Stats) {
		fmt.Fprintf(&b, "   %s: %s\n", key, formatStat(r.Stats[key]))
	}
	b.WriteString("\n")

	if len(r.Errors) > 0 {
		b.WriteString("🚫 에러:\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "   %s\n", e)
		}
		b.WriteString("\n")
	}
	if len(r.Warnings) > 0 {
		b.WriteString("⚠️ 경고:\n")
		for _, warn := range r.Warnings {
			fmt.Fprintf(&b, "   %s\n", warn)
		}
		b.WriteString("\n")
	}

	if r.Passed {
		b.WriteString("✅ 모든 필수 검증 통과!\n")
	} else {
		b.WriteString("❌ 검증 실패 - 수정 후 다시 생성하세요.\n")
	}
	fmt.Fprintf(&b, "%s\n\n", rule)

	_, err := io.WriteString(w, b.String())
	return err
}

func statKeys(stats map[string]any) []string {
	var keys, rest []string
	for _, k := range statOrder {
		if _, ok := stats[k]; ok {
			keys = append(keys, k)
		}
	}
	for k := range stats {
		if !slices.Contains(statOrder, k) && k != StatAvgShapes {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	keys = append(keys, rest...)
	if _, ok := stats[StatAvgShapes]; ok {
		keys = append(keys, StatAvgShapes)
	}
	return keys
}

// formatStat prints size distributions as {8: 3, 10: 40} with sorted keys.
func formatStat(v any) string {
	dist, ok := v.(map[int]int)
	if !ok {
		return fmt.Sprint(v)
	}
	sizes := make([]int, 0, len(dist))
	for size := range dist {
		sizes = append(sizes, size)
	}
	slices.Sort(sizes)
	parts := make([]string, len(sizes))
	for i, size := range sizes {
		parts[i] = fmt.Sprintf("%d: %d", size, dist[size])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
