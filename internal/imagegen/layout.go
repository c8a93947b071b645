package imagegen

// Segment is a run of body text drawn in one color.
type Segment struct {
	Text      string
	Highlight bool
}

// Placement is where a segment lands: X is relative to the left margin,
// Line counts from zero.
type Placement struct {
	Segment
	X    int
	Line int
}

// Layout packs segments left to right. A segment that would cross
// maxWidth starts a new line, unless it is already first on its line.
// Segments are never split.
func Layout(segs []Segment, measure func(string) int, maxWidth int) []Placement {
	out := make([]Placement, 0, len(segs))
	x, line := 0, 0
	for _, s := range segs {
		w := measure(s.Text)
		if x > 0 && x+w > maxWidth {
			x = 0
			line++
		}
		out = append(out, Placement{Segment: s, X: x, Line: line})
		x += w
	}
	return out
}
