// Package pack places glyph rectangles into a square atlas.
package pack

import (
	"errors"
	"sort"
)

// ErrTooLarge is returned when the rectangles do not fit in the largest
// allowed atlas.
var ErrTooLarge = errors.New("pack: rectangles do not fit in the maximum atlas size")

// Size is the width and height of a rectangle to place.
type Size struct {
	W, H int
}

// Point is the top-left corner of a placed rectangle.
type Point struct {
	X, Y int
}

// ShelfAllocator implements shelf-based rectangle packing.
//
// Rectangles are placed left to right on horizontal shelves. A shelf is as
// tall as the tallest item on it; when an item does not fit on any shelf a
// new one is opened below the last. Every item keeps padding pixels of
// clearance from its neighbors and from the atlas border.
type ShelfAllocator struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

type shelf struct {
	y      int
	height int
	x      int
}

// NewShelfAllocator creates an allocator for a width x height atlas.
func NewShelfAllocator(width, height, padding int) *ShelfAllocator {
	return &ShelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// Allocate reserves a w x h rectangle.
// Returns its position and true, or -1, -1, false when it does not fit.
func (a *ShelfAllocator) Allocate(w, h int) (x, y int, ok bool) {
	pw, ph := w+a.padding, h+a.padding

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+pw > a.width {
			continue
		}
		if h > s.height {
			// Only the last shelf can grow, and only into free space.
			if i != len(a.shelves)-1 || s.y+ph > a.height {
				continue
			}
			s.height = h
		}
		x, y = s.x, s.y
		s.x += pw
		a.usedArea += w * h
		return x, y, true
	}

	newY := a.padding
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		newY = last.y + last.height + a.padding
	}
	if a.padding+pw > a.width || newY+ph > a.height {
		return -1, -1, false
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: a.padding + pw})
	a.usedArea += w * h
	return a.padding, newY, true
}

// Reset clears all allocations.
func (a *ShelfAllocator) Reset() {
	a.shelves = a.shelves[:0]
	a.usedArea = 0
}

// Utilization returns the fraction of the atlas covered by allocations.
func (a *ShelfAllocator) Utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

// ShelfCount returns the number of shelves in use.
func (a *ShelfAllocator) ShelfCount() int {
	return len(a.shelves)
}

// Fits reports whether all sizes pack into a side x side square.
func Fits(sizes []Size, side, padding int) bool {
	_, ok := place(sizes, side, padding)
	return ok
}

// Layout packs sizes into the smallest power-of-two square between minSide
// and maxSide. Items are placed tallest first; the returned positions are
// in the order of sizes. Empty sizes are placed at the origin and take no
// space.
func Layout(sizes []Size, padding, minSide, maxSide int) ([]Point, int, error) {
	side := 1
	for side < minSide {
		side <<= 1
	}
	for ; side <= maxSide; side <<= 1 {
		if pos, ok := place(sizes, side, padding); ok {
			return pos, side, nil
		}
	}
	return nil, 0, ErrTooLarge
}

func place(sizes []Size, side, padding int) ([]Point, bool) {
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := sizes[order[a]], sizes[order[b]]
		if sa.H != sb.H {
			return sa.H > sb.H
		}
		return sa.W > sb.W
	})

	alloc := NewShelfAllocator(side, side, padding)
	pos := make([]Point, len(sizes))
	for _, i := range order {
		s := sizes[i]
		if s.W <= 0 || s.H <= 0 {
			continue
		}
		x, y, ok := alloc.Allocate(s.W, s.H)
		if !ok {
			return nil, false
		}
		pos[i] = Point{x, y}
	}
	return pos, true
}
