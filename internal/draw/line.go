package draw

import "sort"

// LineSize is the number of values on one line of a loto card.
const LineSize = 5

// columns on a card: 1-9, 10-19, ..., 80-90.
const columns = 9

// column maps a ball to its card column. 90 shares the last column with 80-89.
func column(v uint8) int {
	c := int(v) / 10
	if c == columns {
		c = columns - 1
	}
	return c
}

// GenerateLine draws LineSize balls from distinct columns, records them in the
// history and returns them sorted. It returns nil and changes nothing when
// fewer than LineSize columns still have balls in the pool.
func (e *Engine) GenerateLine() []uint8 {
	var byColumn [columns][]uint8
	for _, v := range e.Remaining() {
		c := column(v)
		byColumn[c] = append(byColumn[c], v)
	}
	open := make([]int, 0, columns)
	for c, vs := range byColumn {
		if len(vs) > 0 {
			open = append(open, c)
		}
	}
	if len(open) < LineSize {
		return nil
	}

	e.rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	line := make([]uint8, 0, LineSize)
	for _, c := range open[:LineSize] {
		vs := byColumn[c]
		n := vs[e.rng.IntN(len(vs))]
		e.push(n)
		line = append(line, n)
	}
	sort.Slice(line, func(i, j int) bool { return line[i] < line[j] })
	return line
}
