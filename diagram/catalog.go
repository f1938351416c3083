package diagram

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/VantageDataChat/godeck/slidespec"
)

// Names of the built-in course figures.
const (
	BottleneckProcess = "bottleneck_process"
	LeverageBidding   = "leverage_bidding"
	TCOAnalysis       = "tco_comparison"
	PartnershipModel  = "partnership"
	EProcurement      = "eprocurement"
	ToyotaPillars     = "toyota_pillars"
	SourcingMatrix    = "sourcing_matrix"
)

type builder func(opts ...Option) (*Diagram, error)

var catalog = map[string]builder{
	BottleneckProcess: func(opts ...Option) (*Diagram, error) {
		return ProcessFlow(BottleneckProcess, []string{"공급선 다변화", "이중 공급 체계", "장기 계약", "관계 강화"}, opts...)
	},
	LeverageBidding: func(opts ...Option) (*Diagram, error) {
		return BiddingFlow(LeverageBidding,
			[]string{"RFQ 발송", "경쟁 입찰", "TCO 분석", "공급업체 선정"},
			[]string{"표준화된 견적서", "다수 공급업체", "가격 경쟁 유도", "물량 통합"}, opts...)
	},
	TCOAnalysis: func(opts ...Option) (*Diagram, error) {
		labels := []string{"구매가", "물류비", "관세", "품질비용", "재고비용", "관리비용"}
		column := func(name string, amounts ...int64) CostColumn {
			c := CostColumn{Name: name}
			for i, a := range amounts {
				c.Items = append(c.Items, CostItem{Label: labels[i], Amount: a})
			}
			return c
		}
		return TCOComparison(TCOAnalysis,
			column("국내 공급업체", 100, 5, 0, 2, 3, 2),
			column("해외 공급업체", 85, 15, 8, 5, 8, 4), opts...)
	},
	PartnershipModel: func(opts ...Option) (*Diagram, error) {
		return Partnership(PartnershipModel, "전략적 파트너십", []Pillar{
			{Label: "목표 공유", Details: []string{"원가절감", "품질향상", "기술혁신"}},
			{Label: "이익 공유", Details: []string{"절감액", "50/50 분배"}},
			{Label: "리스크 공유", Details: []string{"가격변동", "공동대응"}},
		}, opts...)
	},
	EProcurement: func(opts ...Option) (*Diagram, error) {
		return LayerFlow(EProcurement, []Layer{
			{Label: "카탈로그 구매", Detail: "사전 등록 품목 선택"},
			{Label: "자동 발주", Detail: "재고 부족 시 자동 생성"},
			{Label: "승인 자동화", Detail: "일정 금액 이하 자동 승인"},
			{Label: "3-Way Matching", Detail: "PO-GR-IR 자동 매칭"},
		}, opts...)
	},
	ToyotaPillars: func(opts ...Option) (*Diagram, error) {
		return Pillars(ToyotaPillars, "Toyota SRM 3대 핵심 전략", []Pillar{
			{Label: "상호 신뢰\n파트너십", Details: []string{"장기 계약", "투명한 정보", "공정한 가격"}},
			{Label: "Kaizen\n지속적 개선", Details: []string{"교육 지원", "현장 지원", "공동 해결"}},
			{Label: "성장 비전\n공유", Details: []string{"장기 예측", "투자 지원", "공동 R&D"}},
		}, opts...)
	},
	SourcingMatrix: func(opts ...Option) (*Diagram, error) {
		p := slidespec.DefaultStyle().Palette()
		return Matrix(SourcingMatrix, "자재군별 소싱 전략 매트릭스",
			[]MatrixColumn{
				{Label: "병목자재", Color: p.Bottleneck},
				{Label: "레버리지", Color: p.Leverage},
				{Label: "전략자재", Color: p.Strategic},
				{Label: "일상자재", Color: p.Routine},
			},
			[]MatrixRow{
				{Label: "핵심 목표", Cells: []string{"공급 안정성", "원가 경쟁력", "상호 성장", "효율성"}},
				{Label: "소싱 전략", Cells: []string{"공급선 다변화", "경쟁 촉진", "전략적\n파트너십", "통합 &\n자동화"}},
				{Label: "공급업체 수", Cells: []string{"2~3개", "5개 이상", "1~2개 (전략적)", "1~2개 (통합)"}},
				{Label: "계약 기간", Cells: []string{"중장기\n(1~3년)", "단기\n(6개월~1년)", "장기\n(3~5년)", "중기\n(1~2년)"}},
				{Label: "관계 유형", Cells: []string{"협력적", "거래적", "파트너십", "효율적"}},
				{Label: "협상 방식", Cells: []string{"안정성 중심", "가격 경쟁", "Win-Win", "표준화"}},
				{Label: "정보 공유", Cells: []string{"중간 수준", "제한적", "고도 공유", "최소화"}},
			}, opts...)
	},
}

// Names lists the built-in figures in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build returns a built-in figure by name.
func Build(name string, opts ...Option) (*Diagram, error) {
	b, ok := catalog[name]
	if !ok {
		return nil, invalidInputError(name, "unknown diagram")
	}
	return b(opts...)
}

// WriteFiles writes name.svg and name.png for each diagram into dir and
// returns the written paths.
func WriteFiles(dir string, diagrams []*Diagram, opts RasterOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, writeError(dir, err)
	}
	var written []string
	for _, d := range diagrams {
		svgPath := filepath.Join(dir, d.Name+".svg")
		if err := os.WriteFile(svgPath, d.SVG(), 0o644); err != nil {
			return written, writeError(d.Name, err)
		}
		written = append(written, svgPath)

		data, err := d.PNG(opts)
		if err != nil {
			return written, err
		}
		pngPath := filepath.Join(dir, d.Name+".png")
		if err := os.WriteFile(pngPath, data, 0o644); err != nil {
			return written, writeError(d.Name, err)
		}
		written = append(written, pngPath)
	}
	return written, nil
}
