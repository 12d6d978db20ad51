package card

import (
	"errors"
	"slices"
	"testing"

	"github.com/Silmaen/EvenementLoto-sub001/internal/draw"
	"github.com/Silmaen/EvenementLoto-sub001/internal/round"
)

// sample is the card used by most tests.
//
//	line 1:  1 12 23 34 45
//	line 2:  6 17 28 39 50
//	line 3: 61 72 83 88 90
func sample(t *testing.T) *Card {
	t.Helper()
	c, err := New(7, [][]uint8{
		{1, 12, 23, 34, 45},
		{6, 17, 28, 39, 50},
		{61, 72, 83, 88, 90},
	})
	if err != nil {
		t.Fatalf("new card: %v", err)
	}
	return c
}

func TestGenerate(t *testing.T) {
	c, err := Generate(3, draw.NewWithSeed(draw.DebugSeed))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	seen := map[uint8]bool{}
	for i, line := range c.Values() {
		if len(line) != draw.LineSize {
			t.Fatalf("line %d has %d values", i, len(line))
		}
		cols := map[int]bool{}
		for _, v := range line {
			if seen[v] {
				t.Fatalf("%d appears twice on the card", v)
			}
			seen[v] = true
			col := int(v) / 10
			if col == 9 {
				col = 8
			}
			if cols[col] {
				t.Fatalf("line %v uses column %d twice", line, col)
			}
			cols[col] = true
		}
	}
	if len(seen) != Size {
		t.Fatalf("card holds %d numbers", len(seen))
	}
}

func TestGenerateNoRoom(t *testing.T) {
	e := draw.NewWithSeed(1)
	for i := 0; i < draw.Max; i++ {
		e.Draw()
	}
	if _, err := Generate(1, e); !errors.Is(err, ErrNoRoom) {
		t.Fatalf("expected ErrNoRoom, got %v", err)
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name  string
		lines [][]uint8
	}{
		{"two lines", [][]uint8{{1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}}},
		{"short line", [][]uint8{{1, 2, 3, 4}, {6, 7, 8, 9, 10}, {11, 12, 13, 14, 15}}},
		{"zero", [][]uint8{{0, 2, 3, 4, 5}, {6, 7, 8, 9, 10}, {11, 12, 13, 14, 15}}},
		{"above max", [][]uint8{{91, 2, 3, 4, 5}, {6, 7, 8, 9, 10}, {11, 12, 13, 14, 15}}},
		{"duplicate", [][]uint8{{1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}, {11, 12, 13, 14, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(1, tt.lines); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestStringParse(t *testing.T) {
	c := sample(t)
	s := c.String()
	if s != "7;;1;12;23;34;45;;6;17;28;39;50;;61;72;83;88;90;;" {
		t.Fatalf("text form %q", s)
	}
	back, err := Parse(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if back.Number != 7 || !slices.EqualFunc(back.Values(), c.Values(), slices.Equal[[]uint8]) {
		t.Fatalf("parsed %v", back)
	}
	for _, bad := range []string{"", "7;;1;2;3", "x;;1;12;23;34;45;;6;17;28;39;50;;61;72;83;88;90;;", "7;;1;12;23;34;450;;6;17;28;39;50;;61;72;83;88;90;;"} {
		if _, err := Parse(bad); !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q) = %v", bad, err)
		}
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name   string
		picked []uint8
		want   Result
	}{
		{"nothing", nil, InPlay},
		{"foreign numbers", []uint8{2, 3, 4}, InPlay},
		{"almost one line", []uint8{1, 12, 23, 34}, AlmostOneLine},
		{"one line", []uint8{1, 12, 23, 34, 45}, OneLine},
		{"almost two lines", []uint8{1, 12, 23, 34, 45, 6, 17, 28, 39}, AlmostTwoLines},
		{"two lines", []uint8{1, 12, 23, 34, 45, 6, 17, 28, 39, 50}, TwoLines},
		{"almost full", []uint8{1, 12, 23, 34, 45, 6, 17, 28, 39, 50, 61, 72, 83, 88}, AlmostFull},
		{"full", []uint8{1, 12, 23, 34, 45, 6, 17, 28, 39, 50, 61, 72, 83, 88, 90}, Full},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sample(t)
			if got := c.Check(tt.picked); got != tt.want {
				t.Fatalf("Check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnplay(t *testing.T) {
	c := sample(t)
	c.Check([]uint8{1, 12, 23, 34, 45})
	c.Unplay(45)
	if c.Result() != AlmostOneLine || c.Checked() != 4 {
		t.Fatalf("after unplay: %v, %d checked", c.Result(), c.Checked())
	}
}

func TestWins(t *testing.T) {
	oneLine := []uint8{1, 12, 23, 34, 45}
	twoLines := append(slices.Clone(oneLine), 6, 17, 28, 39, 50)
	full := append(slices.Clone(twoLines), 61, 72, 83, 88, 90)

	tests := []struct {
		kind   round.Kind
		picked []uint8
		want   bool
	}{
		{round.OneLine, oneLine[:4], false},
		{round.OneLine, oneLine, true},
		{round.OneLine, full, true},
		{round.TwoLines, oneLine, false},
		{round.TwoLines, twoLines, true},
		{round.FullCard, twoLines, false},
		{round.FullCard, full, true},
		{round.Reverse, []uint8{2, 3}, true},
		{round.Reverse, []uint8{2, 90}, false},
		{round.Undefined, full, false},
	}
	for _, tt := range tests {
		c := sample(t)
		c.Check(tt.picked)
		if got := c.Wins(tt.kind); got != tt.want {
			t.Errorf("Wins(%v) with %d balls = %v, want %v", tt.kind, len(tt.picked), got, tt.want)
		}
	}
}

func TestDeactivated(t *testing.T) {
	c := sample(t)
	c.Deactivate()
	if c.Check([]uint8{1, 12, 23, 34, 45}) != Out || c.Wins(round.OneLine) {
		t.Fatalf("card out of play reported %v", c.Result())
	}
	c.Activate()
	if !c.Active() || c.Result() != OneLine {
		t.Fatalf("reactivated card: %v", c.Result())
	}
}

func TestResultLabels(t *testing.T) {
	if Full.Label() != "Carton plein" || Out.Label() != "Hors jeu" {
		t.Fatalf("labels %q %q", Full.Label(), Out.Label())
	}
	if Result(42).Label() != "Statut de carton inconnu" {
		t.Fatalf("unknown label %q", Result(42).Label())
	}
}
