package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(drawTotal.WithLabelValues(SourceManual))
	RecordDraw(SourceManual)
	RecordDraw(SourceManual)
	if got := testutil.ToFloat64(drawTotal.WithLabelValues(SourceManual)); got != before+2 {
		t.Fatalf("manual draws = %v, want %v", got, before+2)
	}

	before = testutil.ToFloat64(roundTotal.WithLabelValues("full-card", "finished"))
	RecordRoundFinished("full-card")
	if got := testutil.ToFloat64(roundTotal.WithLabelValues("full-card", "finished")); got != before+1 {
		t.Fatalf("finished rounds = %v, want %v", got, before+1)
	}
}

func TestCardChecks(t *testing.T) {
	win := testutil.ToFloat64(cardChecks.WithLabelValues("win"))
	lose := testutil.ToFloat64(cardChecks.WithLabelValues("lose"))
	RecordCardCheck(true)
	RecordCardCheck(false)
	RecordCardCheck(false)
	if got := testutil.ToFloat64(cardChecks.WithLabelValues("win")); got != win+1 {
		t.Fatalf("wins = %v, want %v", got, win+1)
	}
	if got := testutil.ToFloat64(cardChecks.WithLabelValues("lose")); got != lose+2 {
		t.Fatalf("losses = %v, want %v", got, lose+2)
	}
}

func TestWriteFile(t *testing.T) {
	RecordUndo()
	RecordOutcomeSaved("file")
	path := filepath.Join(t.TempDir(), "loto.prom")
	if err := WriteFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"loto_undo_total", "loto_outcomes_saved_total"} {
		if !strings.Contains(string(b), name) {
			t.Errorf("%s missing from textfile", name)
		}
	}
}
