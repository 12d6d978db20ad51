// internal/stats/stats.go
//
// Statistics over finished rounds: how long rounds last, how many balls
// they take, and which numbers come out most and least often.
package stats

import (
	"strconv"
	"strings"
	"time"

	"github.com/Silmaen/EvenementLoto-sub001/internal/draw"
	"github.com/Silmaen/EvenementLoto-sub001/internal/store"
)

// Summary accumulates statistics record by record.
type Summary struct {
	Rounds int

	FewestDraws  int
	MostDraws    int
	AverageDraws float64

	Shortest time.Duration
	Longest  time.Duration
	Average  time.Duration

	LeastPicked int     // times the least frequent numbers were drawn
	LeastPicks  []uint8 // numbers drawn LeastPicked times
	MostPicked  int
	MostPicks   []uint8

	timed  int
	picks  int
	counts [draw.Max]int
}

// Compute builds a summary of recs.
func Compute(recs []store.Record) *Summary {
	s := &Summary{}
	for _, r := range recs {
		s.Push(r)
	}
	return s
}

// Push adds one finished round.
func (s *Summary) Push(r store.Record) {
	n := r.Draws
	if n == 0 {
		n = len(r.Sequence)
	}
	if n > s.MostDraws {
		s.MostDraws = n
	}
	if s.Rounds == 0 || n < s.FewestDraws {
		s.FewestDraws = n
	}
	s.AverageDraws = (s.AverageDraws*float64(s.Rounds) + float64(n)) / float64(s.Rounds+1)
	s.Rounds++

	if !r.StartedAt.IsZero() && !r.FinishedAt.IsZero() {
		d := r.FinishedAt.Sub(r.StartedAt)
		if d > s.Longest {
			s.Longest = d
		}
		if s.timed == 0 || d < s.Shortest {
			s.Shortest = d
		}
		s.Average = (s.Average*time.Duration(s.timed) + d) / time.Duration(s.timed+1)
		s.timed++
	}

	for _, v := range r.Sequence {
		if v >= draw.Min && v <= draw.Max {
			s.counts[v-1]++
			s.picks++
		}
	}
	s.updatePicks()
}

func (s *Summary) updatePicks() {
	if s.picks == 0 {
		return
	}
	s.LeastPicked, s.MostPicked = s.counts[0], s.counts[0]
	for _, c := range s.counts[1:] {
		s.LeastPicked = min(s.LeastPicked, c)
		s.MostPicked = max(s.MostPicked, c)
	}
	s.LeastPicks, s.MostPicks = s.LeastPicks[:0], s.MostPicks[:0]
	for i, c := range s.counts {
		if c == s.LeastPicked {
			s.LeastPicks = append(s.LeastPicks, uint8(i+1))
		}
		if c == s.MostPicked {
			s.MostPicks = append(s.MostPicks, uint8(i+1))
		}
	}
}

// Count is how many times v was drawn.
func (s *Summary) Count(v uint8) int {
	if v < draw.Min || v > draw.Max {
		return 0
	}
	return s.counts[v-1]
}

// Timed is the number of rounds with both timestamps.
func (s *Summary) Timed() int { return s.timed }

// FormatPicks joins vs with spaces, or "--" when empty.
func FormatPicks(vs []uint8) string {
	if len(vs) == 0 {
		return "--"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, " ")
}
