// internal/round/types.go
//
// Round kinds and lifecycle statuses, with their display labels.
//   - Kind: the winning condition of a round (one line, two lines, full card, reverse).
//   - Status: where the round is in its lifecycle.
//
// Labels are fixed lookup tables indexed by value; values outside the tables
// are representable (files written by newer builds) and get the "unknown" label.

package round

import (
	"fmt"
	"strings"
)

// Kind is the winning condition of a round. Stored on one byte.
type Kind uint8

const (
	Undefined Kind = iota // no kind chosen yet
	OneLine               // first player to complete one line wins
	TwoLines              // first player to complete two lines wins
	FullCard              // first player to complete the whole card wins
	Reverse               // players are eliminated as soon as one of their numbers is drawn
)

var kindLabels = [...]string{
	Undefined: "Aucun type défini",
	OneLine:   "Une Quine",
	TwoLines:  "Deux Quine",
	FullCard:  "Carton Plein",
	Reverse:   "Inverse",
}

var kindNames = [...]string{
	Undefined: "undefined",
	OneLine:   "one-line",
	TwoLines:  "two-lines",
	FullCard:  "full-card",
	Reverse:   "reverse",
}

// UnknownKindLabel is shown for kinds missing from the catalog.
const UnknownKindLabel = "Type de partie inconnu"

// Kinds lists every kind of the catalog, Undefined first.
func Kinds() []Kind {
	out := make([]Kind, len(kindLabels))
	for i := range kindLabels {
		out[i] = Kind(i)
	}
	return out
}

// Known reports whether k belongs to the catalog.
func (k Kind) Known() bool { return int(k) < len(kindLabels) }

// Label returns the display label of k.
func (k Kind) Label() string {
	if !k.Known() {
		return UnknownKindLabel
	}
	return kindLabels[k]
}

// String returns the command-line name of k.
func (k Kind) String() string {
	if !k.Known() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind maps a command-line name (see String) to a kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return Undefined, fmt.Errorf("unknown round kind %q", s)
}

// Status is the lifecycle stage of a round. Derived from the kind and the
// accepted transitions, never set directly.
type Status uint8

const (
	Invalid  Status = iota // kind is Undefined
	Ready                  // configured, waiting to start
	Started                // balls are being drawn
	Finished               // a winner was declared
)

var statusLabels = [...]string{
	Invalid:  "Partie invalide",
	Ready:    "Partie Prête",
	Started:  "Partie Démarrée",
	Finished: "Partie finie",
}

var statusNames = [...]string{
	Invalid:  "invalid",
	Ready:    "ready",
	Started:  "started",
	Finished: "finished",
}

// UnknownStatusLabel is shown for statuses missing from the table.
const UnknownStatusLabel = "Statut inconnu"

// Label returns the display label of s.
func (s Status) Label() string {
	if int(s) >= len(statusLabels) {
		return UnknownStatusLabel
	}
	return statusLabels[s]
}

func (s Status) String() string {
	if int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", uint8(s))
	}
	return statusNames[s]
}
