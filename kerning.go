package fontatlas

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fontatlas/internal/parallel"
)

// kernEpsilon drops adjustments below rounding noise, in em units.
const kernEpsilon = 1e-4

// kerningTable shapes every ordered pair of runes with HarfBuzz and records
// the difference between the pair advance and the two standalone advances.
// This picks up both legacy kern tables and GPOS pair adjustments. Pairs
// that shape into a ligature are skipped.
func kerningTable(data []byte, runes []rune, em float64, pool *parallel.WorkerPool) (map[KerningPair]float32, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fontatlas: parse font for kerning: %w", err)
	}
	ft := face.Font
	size := fixed.Int26_6(em * 64)

	single := make([]fixed.Int26_6, len(runes))
	ok := make([]bool, len(runes))
	{
		k := newKerner(ft, size)
		for i, r := range runes {
			out := k.shape([]rune{r})
			if len(out.Glyphs) == 1 && out.Glyphs[0].GlyphID != 0 {
				single[i], ok[i] = out.Glyphs[0].Advance, true
			}
		}
	}

	// One row of pairs per task; each task owns its face and shaper since
	// neither is safe for concurrent use.
	rows := make([]map[KerningPair]float32, len(runes))
	work := make([]func(), 0, len(runes))
	for i := range runes {
		if !ok[i] {
			continue
		}
		work = append(work, func() {
			k := newKerner(ft, size)
			row := make(map[KerningPair]float32)
			pair := make([]rune, 2)
			for j := range runes {
				if !ok[j] {
					continue
				}
				pair[0], pair[1] = runes[i], runes[j]
				out := k.shape(pair)
				if len(out.Glyphs) != 2 {
					continue
				}
				diff := out.Glyphs[0].Advance + out.Glyphs[1].Advance - single[i] - single[j]
				if kern := float64(diff) / 64 / em; math.Abs(kern) > kernEpsilon {
					row[KerningPair{runes[i], runes[j]}] = float32(kern)
				}
			}
			rows[i] = row
		})
	}
	pool.ExecuteAll(work)

	table := make(map[KerningPair]float32)
	for _, row := range rows {
		for p, v := range row {
			table[p] = v
		}
	}
	return table, nil
}

type kerner struct {
	face   *font.Face
	shaper shaping.HarfbuzzShaper
	size   fixed.Int26_6
}

func newKerner(ft *font.Font, size fixed.Int26_6) *kerner {
	return &kerner{face: font.NewFace(ft), size: size}
}

func (k *kerner) shape(text []rune) shaping.Output {
	return k.shaper.Shape(shaping.Input{
		Text:      text,
		RunStart:  0,
		RunEnd:    len(text),
		Direction: di.DirectionLTR,
		Face:      k.face,
		Size:      k.size,
		Script:    language.LookupScript(text[0]),
		Language:  language.NewLanguage("en"),
	})
}
