package fontatlas

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// Debug writes a human-readable dump of f to w: a header line followed by
// one row per slot with its character, advance, plane bounds and UVs.
func (f *Font) Debug(w io.Writer) error {
	aw, ah := f.AtlasSize()
	if _, err := fmt.Fprintf(w, "font %q: %d glyphs, atlas %dx%d, em %gpx, range %gpx, %d kerning pairs\n",
		f.Name, f.GlyphCount(), aw, ah, f.FontMetrics.EmSize, f.FontMetrics.PixelRange, len(f.Kerning)); err != nil {
		return err
	}
	fm := f.FontMetrics
	if _, err := fmt.Fprintf(w, "ascender %.4f  descender %.4f  line height %.4f\n",
		fm.Ascender, fm.Descender, fm.LineHeight); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "slot\tchar\tcode\tadvance\tplane l,b,r,t\tuv u0,v0,u1,v1")
	for i := range f.Metrics {
		m := &f.Metrics[i]
		uv := f.UV[i*4 : i*4+4]
		fmt.Fprintf(tw, "%d\t%s\tU+%04X\t%.4f\t%.3f,%.3f,%.3f,%.3f\t%.4f,%.4f,%.4f,%.4f\n",
			i, printable(m.Rune), m.Rune, m.Advance,
			m.Plane.Left, m.Plane.Bottom, m.Plane.Right, m.Plane.Top,
			uv[0], uv[1], uv[2], uv[3])
	}
	return tw.Flush()
}

func printable(r rune) string {
	if strconv.IsPrint(r) && r != ' ' {
		return string(r)
	}
	return strconv.QuoteRune(r)
}
