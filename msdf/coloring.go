package msdf

import "math"

// ColorEdges assigns channel masks to every segment of s. Corners whose
// turn exceeds angleThreshold (radians) switch colors so that each channel
// sees the corner as an extension of one of its edges.
//
// Smooth contours stay white. A contour with a single corner is colored as
// a teardrop, splitting short contours into thirds so three colors fit.
func ColorEdges(s *Shape, angleThreshold float64) {
	crossThreshold := math.Sin(angleThreshold)
	color := White
	for ci := range s.Contours {
		c := &s.Contours[ci]
		corners := findCorners(c, crossThreshold)
		switch len(corners) {
		case 0:
			for i := range c.Segments {
				c.Segments[i].Color = White
			}
		case 1:
			colorTeardrop(c, corners[0])
		default:
			color = colorCorners(c, corners, color)
		}
	}
}

func findCorners(c *Contour, crossThreshold float64) []int {
	n := len(c.Segments)
	if n == 0 {
		return nil
	}
	var corners []int
	prev := c.Segments[n-1].Direction(1)
	for i := range c.Segments {
		cur := c.Segments[i].Direction(0)
		if isCorner(prev.Unit(), cur.Unit(), crossThreshold) {
			corners = append(corners, i)
		}
		prev = c.Segments[i].Direction(1)
	}
	return corners
}

func isCorner(a, b Vec2, crossThreshold float64) bool {
	return a.Dot(b) <= 0 || math.Abs(a.Cross(b)) > crossThreshold
}

// nextColor rotates a two-channel color to the next one. White starts the
// cycle at cyan.
func nextColor(c Channel) Channel {
	if c == White || c == Black {
		return Cyan
	}
	shifted := c << 1
	return (shifted | shifted>>3) & White
}

// nextColorAvoiding rotates c while keeping clear of banned. When c and
// banned share exactly one channel the complement is used.
func nextColorAvoiding(c, banned Channel) Channel {
	switch c & banned {
	case Red, Green, Blue:
		return (c & banned) ^ White
	}
	return nextColor(c)
}

func colorCorners(c *Contour, corners []int, color Channel) Channel {
	n := len(c.Segments)
	color = nextColor(color)
	initial := color
	spline := 0
	start := corners[0]
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if spline+1 < len(corners) && corners[spline+1] == idx {
			spline++
			banned := Black
			if spline == len(corners)-1 {
				banned = initial
			}
			color = nextColorAvoiding(color, banned)
		}
		c.Segments[idx].Color = color
	}
	return color
}

func colorTeardrop(c *Contour, corner int) {
	colors := [3]Channel{Cyan, White, Magenta}
	n := len(c.Segments)
	if n >= 3 {
		for i := 0; i < n; i++ {
			k := int(3+2.875*float64(i)/float64(n-1)-1.4375+0.5) - 3
			c.Segments[(corner+i)%n].Color = colors[k+1]
		}
		return
	}

	// Too few segments to carry three colors: split into thirds.
	var parts []Segment
	if n == 1 {
		thirds := c.Segments[0].Split3()
		for i := range thirds {
			thirds[i].Color = colors[i]
		}
		parts = thirds[:]
	} else {
		a := c.Segments[corner].Split3()
		b := c.Segments[(corner+1)%2].Split3()
		parts = append(parts, a[:]...)
		parts = append(parts, b[:]...)
		for i := range parts {
			parts[i].Color = colors[i/2]
		}
	}
	c.Segments = parts
}
