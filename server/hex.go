package main

import "math"

// Hex is an axial coordinate on the map grid
type Hex struct {
	Q int `json:"q" msgpack:"q"`
	R int `json:"r" msgpack:"r"`
}

// hexDirections in clockwise order starting east
var hexDirections = [6]Hex{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// HexDistance returns the hex distance between two cells
func HexDistance(a, b Hex) int {
	dq := abs(a.Q - b.Q)
	ds := abs(a.Q + a.R - b.Q - b.R)
	dr := abs(a.R - b.R)
	return (dq + ds + dr) / 2
}

// HexNeighbors returns the six cells adjacent to (q, r)
func HexNeighbors(c Hex) []Hex {
	out := make([]Hex, 6)
	for i, d := range hexDirections {
		out[i] = Hex{c.Q + d.Q, c.R + d.R}
	}
	return out
}

// HexRing returns the cells exactly radius away from center, clockwise
func HexRing(center Hex, radius int) []Hex {
	if radius == 0 {
		return []Hex{center}
	}
	out := make([]Hex, 0, 6*radius)
	q, r := center.Q, center.R-radius
	ringDirs := [6]Hex{{1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1}, {1, -1}}
	for _, d := range ringDirs {
		for i := 0; i < radius; i++ {
			out = append(out, Hex{q, r})
			q += d.Q
			r += d.R
		}
	}
	return out
}

// HexRange returns all cells within radius of center (1 + 3k(k+1) cells)
func HexRange(center Hex, radius int) []Hex {
	out := make([]Hex, 0, 1+3*radius*(radius+1))
	for dq := -radius; dq <= radius; dq++ {
		lo := max(-radius, -dq-radius)
		hi := min(radius, -dq+radius)
		for dr := lo; dr <= hi; dr++ {
			out = append(out, Hex{center.Q + dq, center.R + dr})
		}
	}
	return out
}

// HexLine returns the cells along a straight line from a to b inclusive.
// Interpolates in cube space and rounds each sample; the epsilon nudge and
// the x/y/z correction order match what path rendering expects.
func HexLine(a, b Hex) []Hex {
	n := HexDistance(a, b)
	if n == 0 {
		return []Hex{a}
	}
	out := make([]Hex, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		fq := float64(a.Q) + float64(b.Q-a.Q)*t + 1e-6
		fr := float64(a.R) + float64(b.R-a.R)*t + 1e-6
		out = append(out, roundHex(fq, fr))
	}
	return out
}

// roundHex rounds fractional axial coordinates to the nearest cell,
// correcting whichever cube axis carries the largest rounding error
func roundHex(fq, fr float64) Hex {
	x, z := fq, fr
	y := -x - z
	rx, ry, rz := math.Round(x), math.Round(y), math.Round(z)
	dx, dy, dz := math.Abs(rx-x), math.Abs(ry-y), math.Abs(rz-z)
	if dx > dy && dx > dz {
		rx = -ry - rz
	} else if dy > dz {
		ry = -rx - rz
	} else {
		rz = -rx - ry
	}
	return Hex{int(rx), int(rz)}
}

// MapHexes returns every cell of a hex-shaped map of the given radius
func MapHexes(radius int) []Hex {
	return HexRange(Hex{0, 0}, radius)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
