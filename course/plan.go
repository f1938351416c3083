package course

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"strings"

	"github.com/VantageDataChat/godeck/internal/logging"
	"github.com/VantageDataChat/godeck/outline"
	"github.com/VantageDataChat/godeck/slidespec"
)

// planner carries the per-call state of Plan.
type planner struct {
	opts   Options
	style  slidespec.Style
	pal    slidespec.Palette
	logger logging.Logger
	slides []slidespec.SlideSpec
}

// PlanDocument plans a deck for a parsed document.
func PlanDocument(doc *outline.Document, opts Options) []slidespec.SlideSpec {
	return Plan(doc.Meta, doc.Sections, opts)
}

// Plan returns the slides of a lecture deck for sections.
func Plan(meta outline.Meta, sections []outline.Section, opts Options) []slidespec.SlideSpec {
	p := &planner{
		opts:   opts,
		style:  opts.Style,
		pal:    opts.Style.Palette(),
		logger: logging.Ensure(opts.Logger),
	}
	chapters := chapterTitles(sections)

	p.add(p.cover(meta))
	p.add(p.objectives(chapters))
	p.add(p.introduction(meta, sections, len(chapters)))
	p.add(p.contents(chapters))

	for _, s := range sections {
		if p.full() {
			p.logger.Info("target reached, remaining sections skipped", "target", opts.TargetSlides)
			break
		}
		p.add(p.content(len(p.slides)+1, s))
	}
	for opts.TargetSlides > 0 && len(p.slides) < opts.TargetSlides {
		n := len(p.slides) + 1
		p.add(p.withHeader(slidespec.NewSlide(fmt.Sprintf("슬라이드 %d", n)), fmt.Sprintf("슬라이드 %d", n), "추가 내용"))
	}
	return p.slides
}

func (p *planner) full() bool {
	return p.opts.TargetSlides > 0 && len(p.slides) >= p.opts.TargetSlides
}

func (p *planner) add(s slidespec.SlideSpec) {
	p.slides = append(p.slides, s)
	p.logger.Debug("slide planned", "slide", len(p.slides), "title", s.Title, "shapes", len(s.Shapes))
}

// withHeader adds the 20pt title and the 16pt bold governing message.
func (p *planner) withHeader(s slidespec.SlideSpec, title, governing string) slidespec.SlideSpec {
	return s.With(
		slidespec.TextBox{
			Frame: slidespec.Box(0.5, 0.3, 9.83, 0.6),
			Lines: []string{title},
			Style: slidespec.Text(slidespec.RoleTitle).Bolded().Colored(p.pal.DarkGray),
		},
		slidespec.TextBox{
			Frame: slidespec.Box(0.5, 0.95, 9.83, 0.5),
			Lines: []string{governing},
			Style: slidespec.Text(slidespec.RoleGoverning).Bolded().Colored(p.pal.MedGray),
		},
	)
}

func (p *planner) cover(meta outline.Meta) slidespec.SlideSpec {
	w, h := p.style.Canvas()
	title := orDefault(meta.Title, "강의 자료")
	shapes := []slidespec.ShapeSpec{
		slidespec.Rectangle{Frame: slidespec.Box(0, 0, w, h), Fill: p.pal.White},
		slidespec.TextBox{
			Frame: slidespec.Box(1, 2.5, w-2, 1.5),
			Lines: []string{title},
			Style: slidespec.Text(slidespec.RoleTitle).Sized(48).Bolded().Colored(p.pal.DarkGray).
				Aligned(slidespec.AlignCenter, slidespec.AnchorMiddle),
		},
	}
	if sub := strings.TrimSpace(strings.Join(nonEmpty(meta.Session, meta.Subtitle), ": ")); sub != "" {
		shapes = append(shapes, slidespec.TextBox{
			Frame: slidespec.Box(1, 4.5, w-2, 0.6),
			Lines: []string{sub},
			Style: slidespec.Text(slidespec.RoleTitle).Colored(p.pal.MedGray).Aligned(slidespec.AlignCenter, slidespec.AnchorTop),
		})
	}
	if meta.Date != "" || len(meta.Tags) > 0 {
		shapes = append(shapes, slidespec.TextBox{
			Frame: slidespec.Box(1, 5.5, w-2, 0.4),
			Lines: []string{strings.Join(nonEmpty(strings.Join(meta.Tags, ", "), meta.Date), " | ")},
			Style: slidespec.Text(slidespec.RoleHeading).Colored(p.pal.LightGray).Aligned(slidespec.AlignCenter, slidespec.AnchorTop),
		})
	}
	return slidespec.NewSlide(title).With(shapes...)
}

func (p *planner) objectives(chapters []string) slidespec.SlideSpec {
	items := p.opts.Objectives
	if len(items) == 0 {
		items = chapters
	}
	items = limit(items, maxObjectives)

	s := p.withHeader(slidespec.NewSlide("학습 목표"), "학습 목표", "이번 강의를 마치면 다음 내용을 설명하고 적용할 수 있습니다.")
	y := 2.0
	for i, item := range items {
		s = s.With(
			p.marker(slidespec.Box(1.0, y, 0.4, 0.4), i+1, 18),
			slidespec.TextBox{
				Frame: slidespec.Box(1.6, y, 8.0, 0.4),
				Lines: []string{item},
				Style: slidespec.Text(slidespec.RoleBullet).Colored(p.pal.DarkGray).Aligned(slidespec.AlignLeft, slidespec.AnchorMiddle),
			},
		)
		y += 0.7
	}
	return s
}

func (p *planner) introduction(meta outline.Meta, sections []outline.Section, chapterCount int) slidespec.SlideSpec {
	governing := DefaultGoverning
	for _, s := range sections {
		if len(s.AsideBlocks) > 0 {
			governing = governingMessage(s)
			break
		}
	}
	title := orDefault(meta.Title, "이번 강의")

	left := []string{"강의 개요", "", title}
	if meta.Subtitle != "" {
		left = append(left, meta.Subtitle)
	}
	right := []string{"구성", "", fmt.Sprintf("%d개 장, %d개 주제로 구성됩니다.", chapterCount, len(sections))}

	return p.withHeader(slidespec.NewSlide("들어가며"), "들어가며", governing).With(
		slidespec.Rectangle{Frame: slidespec.Box(0.8, 2.0, 4.5, 4.0), Shape: slidespec.RectRounded, Fill: p.pal.VeryLightGray, Line: p.pal.LightGray},
		slidespec.TextBox{Frame: slidespec.Box(1.0, 2.3, 4.1, 3.4), Lines: left, Style: slidespec.Text(slidespec.RoleBody).Colored(p.pal.DarkGray)},
		slidespec.Rectangle{Frame: slidespec.Box(5.5, 2.0, 4.5, 4.0), Shape: slidespec.RectRounded, Fill: p.pal.Accent, Line: p.pal.Accent},
		slidespec.TextBox{Frame: slidespec.Box(5.7, 2.3, 4.1, 3.4), Lines: right, Style: slidespec.Text(slidespec.RoleBody).Colored(p.pal.White)},
	)
}

func (p *planner) contents(chapters []string) slidespec.SlideSpec {
	entries := limit(chapters, maxTOCEntries)
	s := p.withHeader(slidespec.NewSlide("목차"), "목차 (Table of Contents)",
		fmt.Sprintf("%d개 장으로 구성된 내용을 학습합니다.", len(chapters)))
	y := 2.0
	for i, chapter := range entries {
		s = s.With(
			slidespec.Rectangle{
				Frame: slidespec.Box(1.5, y, 1.0, 0.5), Shape: slidespec.RectRounded,
				Fill: p.pal.VeryLightGray, Line: p.pal.LightGray,
				Lines: []string{fmt.Sprintf("%d장", i+1)},
				Style: slidespec.Text(slidespec.RoleHeading).Bolded().Colored(p.pal.DarkGray).Aligned(slidespec.AlignCenter, slidespec.AnchorMiddle),
			},
			slidespec.TextBox{
				Frame: slidespec.Box(2.7, y, 6.5, 0.5),
				Lines: []string{chapter},
				Style: slidespec.Text(slidespec.RoleBullet).Colored(p.pal.DarkGray).Aligned(slidespec.AlignLeft, slidespec.AnchorMiddle),
			},
		)
		y += 0.65
	}
	return s
}

// content lays out one section: the governing message comes from its first
// aside, bullets are capped at five and an attached diagram takes the left
// 60% of the body.
func (p *planner) content(number int, section outline.Section) slidespec.SlideSpec {
	title := outline.PlainText(section.Title)
	bullets := bulletLines(section)
	s := slidespec.NewSlide(title)
	if p.opts.Dense {
		w, _ := p.style.Canvas()
		s = s.With(slidespec.Rectangle{Frame: slidespec.Box(0, 0, w, 1.55), Fill: p.pal.VeryLightGray})
	}
	s = p.withHeader(s, title, governingMessage(section))

	bodyTop, bodyBottom := 2.0, 6.0
	if rows := tableRows(section); len(rows) > 0 {
		height := min(0.3*float64(len(rows)), 2.4)
		s = s.With(slidespec.Table{
			Frame:      slidespec.Box(0.8, 7.0-height-0.2, 9.23, height),
			Rows:       rows,
			Style:      slidespec.Text(slidespec.RoleBody).Colored(p.pal.DarkGray),
			HeaderFill: p.pal.VeryLightGray,
		})
		bodyBottom = 7.0 - height - 0.4
	}

	if data, ok := p.opts.Diagrams[number]; ok {
		if frame, ok := pictureFrame(data, slidespec.Box(0.8, bodyTop, 6.0, bodyBottom-bodyTop)); ok {
			s = s.With(slidespec.Picture{Frame: frame, Data: data, MimeType: "image/png", Alt: title})
			return s.With(p.bulletPanel(slidespec.Box(7.0, bodyTop, 3.0, bodyBottom-bodyTop), bullets)...)
		}
		p.logger.Warn("diagram is not a decodable PNG, slide laid out without it", "slide", number)
	}

	if p.opts.Dense {
		return s.With(p.steps(slidespec.Box(1.0, bodyTop, 8.8, bodyBottom-bodyTop), bullets)...)
	}
	return s.With(p.bulletPanel(slidespec.Box(1.5, bodyTop, 7.5, bodyBottom-bodyTop), bullets)...)
}

// bulletPanel is a rounded box holding a bullet list.
func (p *planner) bulletPanel(frame slidespec.Rect, bullets []string) []slidespec.ShapeSpec {
	return []slidespec.ShapeSpec{
		slidespec.Rectangle{Frame: frame, Shape: slidespec.RectRounded, Fill: p.pal.VeryLightGray, Line: p.pal.LightGray},
		slidespec.TextBox{
			Frame:   slidespec.Box(frame.X+0.2, frame.Y+0.3, frame.W-0.4, max(frame.H-0.6, 0.3)),
			Lines:   bullets,
			Style:   slidespec.Text(slidespec.RoleBody).Colored(p.pal.DarkGray),
			Bullets: true,
		},
	}
}

// steps lays bullets out as numbered rows joined by connectors.
func (p *planner) steps(frame slidespec.Rect, bullets []string) []slidespec.ShapeSpec {
	rowHeight := frame.H / float64(len(bullets))
	if rowHeight > 0.8 {
		rowHeight = 0.8
	}
	const d = 0.4
	var shapes []slidespec.ShapeSpec
	for i, b := range bullets {
		y := frame.Y + float64(i)*rowHeight
		shapes = append(shapes,
			p.marker(slidespec.Box(frame.X, y, d, d), i+1, 0),
			slidespec.Rectangle{
				Frame: slidespec.Box(frame.X+0.6, y, frame.W-0.6, d), Shape: slidespec.RectRounded,
				Fill: p.pal.VeryLightGray, Line: p.pal.LightGray,
				Lines: []string{b},
				Style: slidespec.Text(slidespec.RoleBody).Colored(p.pal.DarkGray).Aligned(slidespec.AlignLeft, slidespec.AnchorMiddle),
			},
		)
		if i > 0 && rowHeight > d {
			prev := frame.Y + float64(i-1)*rowHeight
			shapes = append(shapes, slidespec.Arrow{
				From:  slidespec.Point{X: frame.X + d/2, Y: prev + d},
				To:    slidespec.Point{X: frame.X + d/2, Y: y},
				Color: p.pal.LightGray,
			})
		}
	}
	return shapes
}

// marker is an accent circle holding a number. A zero size uses the body size.
func (p *planner) marker(frame slidespec.Rect, n, size int) slidespec.Rectangle {
	ts := slidespec.Text(slidespec.RoleBody).Bolded().Colored(p.pal.White).Aligned(slidespec.AlignCenter, slidespec.AnchorMiddle)
	if size > 0 {
		ts = ts.Sized(size)
	}
	return slidespec.Rectangle{
		Frame: frame, Shape: slidespec.RectEllipse,
		Fill: p.pal.Accent, Line: p.pal.Accent,
		Lines: []string{fmt.Sprint(n)},
		Style: ts,
	}
}

// pictureFrame fits the image into box keeping its aspect ratio, anchored
// top-left.
func pictureFrame(data []byte, box slidespec.Rect) (slidespec.Rect, bool) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return slidespec.Rect{}, false
	}
	w := box.W
	h := w * float64(cfg.Height) / float64(cfg.Width)
	if h > box.H {
		h = box.H
		w = h * float64(cfg.Width) / float64(cfg.Height)
	}
	return slidespec.Box(box.X, box.Y, w, h), true
}

func governingMessage(s outline.Section) string {
	if len(s.AsideBlocks) == 0 {
		return DefaultGoverning
	}
	msg := []rune(outline.PlainText(s.AsideBlocks[0]))
	if len(msg) > maxGoverningRunes {
		msg = msg[:maxGoverningRunes]
	}
	if text := strings.TrimSpace(string(msg)); text != "" {
		return text
	}
	return DefaultGoverning
}

func bulletLines(s outline.Section) []string {
	var out []string
	for _, b := range limit(s.Bullets, maxBullets) {
		if text := outline.PlainText(b); text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 {
		return []string{DefaultBullet}
	}
	return out
}

// tableRows splits the section's table lines into cells. Rows without any
// cell text are dropped.
func tableRows(s outline.Section) [][]string {
	if len(s.Tables) == 0 {
		return nil
	}
	var rows [][]string
	for _, line := range s.Tables[0] {
		cells := strings.Split(strings.Trim(line, "|"), "|")
		row := make([]string, 0, len(cells))
		empty := true
		for _, c := range cells {
			text := outline.PlainText(strings.TrimSpace(c))
			if text != "" {
				empty = false
			}
			row = append(row, text)
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

func chapterTitles(sections []outline.Section) []string {
	var out []string
	for _, s := range sections {
		if s.Level == 2 {
			out = append(out, outline.PlainText(s.Title))
		}
	}
	return out
}

func limit(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
