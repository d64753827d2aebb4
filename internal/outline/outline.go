// Package outline converts sfnt glyph outlines into msdf shapes.
package outline

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fontatlas/msdf"
)

// ErrNoGlyph is returned when the font maps a rune to the missing glyph.
var ErrNoGlyph = errors.New("outline: rune not covered by font")

// Glyph is the extracted geometry of one glyph at a given pixel size.
type Glyph struct {
	ID sfnt.GlyphIndex

	// Shape is normalized (filled side positive) and uses pixel units with
	// y pointing down from the baseline.
	Shape *msdf.Shape

	// Bounds is the exact bounding box of Shape. Empty for blank glyphs.
	Bounds msdf.Rect

	// Advance is the unhinted horizontal advance in pixels.
	Advance float64
}

// Lookup returns the glyph index for r.
func Lookup(f *sfnt.Font, buf *sfnt.Buffer, r rune) (sfnt.GlyphIndex, error) {
	gid, err := f.GlyphIndex(buf, r)
	if err != nil {
		return 0, fmt.Errorf("outline: glyph index for %q: %w", r, err)
	}
	if gid == 0 {
		return 0, ErrNoGlyph
	}
	return gid, nil
}

// Extract loads glyph gid at ppem pixels per em. buf may be nil; callers
// extracting many glyphs should reuse one Buffer per goroutine.
func Extract(f *sfnt.Font, buf *sfnt.Buffer, gid sfnt.GlyphIndex, ppem float64) (*Glyph, error) {
	if buf == nil {
		buf = &sfnt.Buffer{}
	}
	size := fixed.Int26_6(ppem * 64)

	advance, err := f.GlyphAdvance(buf, gid, size, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("outline: advance of glyph %d: %w", gid, err)
	}

	segments, err := f.LoadGlyph(buf, gid, size, nil)
	if err != nil {
		return nil, fmt.Errorf("outline: load glyph %d: %w", gid, err)
	}

	b := msdf.NewBuilder()
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.MoveTo(toVec(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.LineTo(toVec(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.QuadTo(toVec(seg.Args[0]), toVec(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.CubeTo(toVec(seg.Args[0]), toVec(seg.Args[1]), toVec(seg.Args[2]))
		}
	}
	shape := b.Shape()
	shape.Normalize()

	return &Glyph{
		ID:      gid,
		Shape:   shape,
		Bounds:  shape.Bounds(),
		Advance: fixedToFloat(advance),
	}, nil
}

// Blank reports whether the glyph has no outline, as for a space.
func (g *Glyph) Blank() bool {
	return g.Shape.Empty() || g.Bounds.Empty()
}

func toVec(p fixed.Point26_6) msdf.Vec2 {
	return msdf.Vec2{X: fixedToFloat(p.X), Y: fixedToFloat(p.Y)}
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
