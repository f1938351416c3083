package analyze

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Write prints the report as an aligned table followed by the summary.
func Write(w io.Writer, r Report) error {
	rule := strings.Repeat("=", 70)
	fmt.Fprintf(w, "%s\n%s\n%s\n", rule, r.Path, rule)
	fmt.Fprintf(w, "Total slides: %d\n", r.SlideCount)
	fmt.Fprintf(w, "Dimensions: %.2f\" × %.2f\"\n", r.WidthInches, r.HeightInches)
	fmt.Fprintf(w, "Aspect ratio: %.3f:1\n\n", r.AspectRatio)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "slide\tshapes\tauto\ttext\tgroup\tpicture\ttable\tconnector\tdensity\tcoverage\t")
	for _, s := range r.Slides {
		mark := ""
		if s.HighDensity {
			mark = " ⭐"
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t~%d%%\t%.1f%%\t%s\n",
			s.Number, s.Shapes, s.AutoShapes, s.TextBoxes, s.Groups, s.Pictures, s.Tables, s.Connectors,
			s.Density, s.Coverage, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nAverage shapes per slide: %.1f\n", r.Averages.Shapes)
	fmt.Fprintf(w, "Average auto shapes per slide: %.1f\n", r.Averages.AutoShapes)
	fmt.Fprintf(w, "Average text boxes per slide: %.1f\n", r.Averages.TextBoxes)
	fmt.Fprintf(w, "Average groups per slide: %.1f\n", r.Averages.Groups)
	fmt.Fprintf(w, "Average coverage: %.1f%%\n", r.Averages.Coverage)

	if len(r.FontSizes) > 0 {
		sizes := make([]string, len(r.FontSizes))
		for i, s := range r.FontSizes {
			sizes[i] = fmt.Sprintf("%dpt", s)
		}
		fmt.Fprintf(w, "Font sizes: %s (most common %dpt)\n", strings.Join(sizes, ", "), r.MostCommonSize)
	}
	if len(r.Fonts) > 0 {
		fmt.Fprintf(w, "Fonts: %s\n", strings.Join(r.Fonts, ", "))
	}
	_, err := fmt.Fprintln(w, rule)
	return err
}
