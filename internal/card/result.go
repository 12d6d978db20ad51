package card

// Result is the progress of a card towards a win.
type Result uint8

const (
	InPlay         Result = iota // nothing complete
	AlmostOneLine                // one number missing on some line
	OneLine                      // one full line
	AlmostTwoLines               // one full line, another missing one number
	TwoLines                     // two full lines
	AlmostFull                   // one number missing on the whole card
	Full                         // every number marked
	Out                          // not in play
)

var resultLabels = [...]string{
	InPlay:         "En cours",
	AlmostOneLine:  "Presque une ligne",
	OneLine:        "Une ligne",
	AlmostTwoLines: "Presque deux lignes",
	TwoLines:       "Deux lignes",
	AlmostFull:     "Presque carton plein",
	Full:           "Carton plein",
	Out:            "Hors jeu",
}

// Label returns the display label of r.
func (r Result) Label() string {
	if int(r) >= len(resultLabels) {
		return "Statut de carton inconnu"
	}
	return resultLabels[r]
}

func (r Result) String() string { return r.Label() }
