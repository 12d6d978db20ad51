// internal/card/card.go
//
// Loto cards: three lines of five numbers, each line spread over distinct
// columns. A card is checked against the drawn balls and reports how close
// it is to a win; Wins maps that progress to a round kind.
//
// Text form, used by the CLI to pass cards around:
//
//	NUMBER;;v1;v2;v3;v4;v5;;v6;...;v10;;v11;...;v15;;
package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Silmaen/EvenementLoto-sub001/internal/draw"
	"github.com/Silmaen/EvenementLoto-sub001/internal/round"
)

// Lines is the number of lines on a card.
const Lines = 3

// Size is the number of values on a card.
const Size = Lines * draw.LineSize

var (
	ErrNoRoom  = errors.New("card: not enough numbers left to fill a line")
	ErrInvalid = errors.New("card: invalid card")
)

type cell struct {
	value   uint8
	checked bool
}

// Card is one loto card and its checking state.
type Card struct {
	Number uint32

	lines  [Lines][draw.LineSize]cell
	result Result
}

// Generate fills a card with lines taken from e. Values are recorded in e's
// history, so lines never share a number; use a fresh engine per card.
func Generate(number uint32, e *draw.Engine) (*Card, error) {
	c := &Card{Number: number}
	for i := range c.lines {
		line := e.GenerateLine()
		if line == nil {
			return nil, ErrNoRoom
		}
		for j, v := range line {
			c.lines[i][j] = cell{value: v}
		}
	}
	return c, nil
}

// New builds a card from explicit lines.
func New(number uint32, lines [][]uint8) (*Card, error) {
	if len(lines) != Lines {
		return nil, fmt.Errorf("%w: %d lines", ErrInvalid, len(lines))
	}
	c := &Card{Number: number}
	var seen [draw.Max + 1]bool
	for i, line := range lines {
		if len(line) != draw.LineSize {
			return nil, fmt.Errorf("%w: line %d has %d values", ErrInvalid, i+1, len(line))
		}
		for j, v := range line {
			if v < draw.Min || v > draw.Max {
				return nil, fmt.Errorf("%w: %d out of range", ErrInvalid, v)
			}
			if seen[v] {
				return nil, fmt.Errorf("%w: %d appears twice", ErrInvalid, v)
			}
			seen[v] = true
			c.lines[i][j] = cell{value: v}
		}
	}
	return c, nil
}

// Parse reads the text form produced by String.
func Parse(s string) (*Card, error) {
	parts := strings.Split(strings.TrimSpace(s), ";")
	// number, "", then per line 5 values and "".
	if len(parts) < 2+Lines*(draw.LineSize+1) {
		return nil, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	num, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: number %q", ErrInvalid, parts[0])
	}
	lines := make([][]uint8, Lines)
	pos := 2
	for i := range lines {
		for j := 0; j < draw.LineSize; j++ {
			v, err := strconv.ParseUint(parts[pos], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: value %q", ErrInvalid, parts[pos])
			}
			lines[i] = append(lines[i], uint8(v))
			pos++
		}
		pos++
	}
	return New(uint32(num), lines)
}

// String returns the text form of the card. Checked state is not kept.
func (c *Card) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(c.Number), 10))
	b.WriteString(";;")
	for _, line := range c.lines {
		for _, n := range line {
			b.WriteString(strconv.Itoa(int(n.value)))
			b.WriteByte(';')
		}
		b.WriteByte(';')
	}
	return b.String()
}

// Values returns the numbers of the card, line by line.
func (c *Card) Values() [][]uint8 {
	out := make([][]uint8, Lines)
	for i, line := range c.lines {
		for _, n := range line {
			out[i] = append(out[i], n.value)
		}
	}
	return out
}

// Play marks v if it is on the card.
func (c *Card) Play(v uint8) { c.mark(v, true) }

// Unplay clears the mark on v.
func (c *Card) Unplay(v uint8) { c.mark(v, false) }

func (c *Card) mark(v uint8, checked bool) {
	for i := range c.lines {
		for j := range c.lines[i] {
			if c.lines[i][j].value == v {
				c.lines[i][j].checked = checked
				c.update()
				return
			}
		}
	}
}

// Reset clears every mark. A deactivated card stays out of play.
func (c *Card) Reset() {
	for i := range c.lines {
		for j := range c.lines[i] {
			c.lines[i][j].checked = false
		}
	}
	c.update()
}

// Check resets the card and marks every ball of picked.
func (c *Card) Check(picked []uint8) Result {
	c.Reset()
	for _, v := range picked {
		c.Play(v)
	}
	return c.result
}

// Deactivate takes the card out of play.
func (c *Card) Deactivate() { c.result = Out }

// Activate puts a deactivated card back in play.
func (c *Card) Activate() {
	if c.result == Out {
		c.result = InPlay
		c.update()
	}
}

func (c *Card) Active() bool   { return c.result != Out }
func (c *Card) Result() Result { return c.result }

// Checked counts the marked numbers.
func (c *Card) Checked() int {
	n := 0
	for _, line := range c.lines {
		for _, v := range line {
			if v.checked {
				n++
			}
		}
	}
	return n
}

func (c *Card) update() {
	if c.result == Out {
		return
	}
	var full, almost int
	for _, line := range c.lines {
		n := 0
		for _, v := range line {
			if v.checked {
				n++
			}
		}
		switch n {
		case draw.LineSize:
			full++
		case draw.LineSize - 1:
			almost++
		}
	}
	switch {
	case full == 3:
		c.result = Full
	case full == 2 && almost == 1:
		c.result = AlmostFull
	case full == 2:
		c.result = TwoLines
	case full == 1 && almost >= 1:
		c.result = AlmostTwoLines
	case full == 1:
		c.result = OneLine
	case almost >= 1:
		c.result = AlmostOneLine
	default:
		c.result = InPlay
	}
}

// Wins reports whether the card satisfies the winning condition of k with
// its current marks. A card out of play never wins.
func (c *Card) Wins(k round.Kind) bool {
	if c.result == Out {
		return false
	}
	switch k {
	case round.OneLine:
		return c.result >= OneLine
	case round.TwoLines:
		return c.result >= TwoLines
	case round.FullCard:
		return c.result == Full
	case round.Reverse:
		return c.Checked() == 0
	}
	return false
}
