package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	drawTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loto_draws_total",
			Help: "Balls recorded, by source",
		},
		[]string{"source"},
	)

	manualRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loto_manual_rejections_total",
			Help: "Manual entries refused (duplicate or out of range)",
		},
	)

	undoTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loto_undo_total",
			Help: "Draws cancelled",
		},
	)

	roundTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loto_rounds_total",
			Help: "Round lifecycle events by kind",
		},
		[]string{"kind", "event"},
	)

	outcomeSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loto_outcomes_saved_total",
			Help: "Round outcomes persisted, by store",
		},
		[]string{"store"},
	)

	cardChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loto_card_checks_total",
			Help: "Cards checked against the draws, by result",
		},
		[]string{"result"},
	)
)

// Draw sources.
const (
	SourceRandom = "random"
	SourceManual = "manual"
)

// RecordDraw counts one ball recorded from source.
func RecordDraw(source string) { drawTotal.WithLabelValues(source).Inc() }

// RecordManualRejected counts a refused manual entry.
func RecordManualRejected() { manualRejected.Inc() }

// RecordUndo counts a cancelled draw.
func RecordUndo() { undoTotal.Inc() }

// RecordRoundStarted and RecordRoundFinished count lifecycle transitions.
func RecordRoundStarted(kind string)  { roundTotal.WithLabelValues(kind, "started").Inc() }
func RecordRoundFinished(kind string) { roundTotal.WithLabelValues(kind, "finished").Inc() }

// RecordOutcomeSaved counts an outcome written to store ("db" or "file").
func RecordOutcomeSaved(store string) { outcomeSaved.WithLabelValues(store).Inc() }

// RecordCardCheck counts a card verification.
func RecordCardCheck(win bool) {
	result := "lose"
	if win {
		result = "win"
	}
	cardChecks.WithLabelValues(result).Inc()
}

// WriteFile dumps every registered metric in text format to path, for the
// node exporter textfile collector. The file is replaced atomically.
func WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
