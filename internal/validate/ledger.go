package validate

import "log/slog"

// Correction names one kind of repair the validator can apply.
type Correction string

const (
	CaughtStealingNormalized Correction = "caught_stealing_normalized"
	Average                  Correction = "average"
	OnBase                   Correction = "on_base"
	Slugging                 Correction = "slugging"
	Combo                    Correction = "combo" // on-base plus slugging
)

// Corrections lists every kind in report order.
var Corrections = []Correction{CaughtStealingNormalized, Average, OnBase, Slugging, Combo}

// Ledger tallies corrections for one batch. Create a fresh one per batch;
// counts only grow. Not safe for concurrent use.
type Ledger struct {
	counts map[Correction]int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{counts: make(map[Correction]int, len(Corrections))}
}

// Increment adds one correction of kind c.
func (l *Ledger) Increment(c Correction) {
	l.counts[c]++
}

// Count returns the tally for c.
func (l *Ledger) Count(c Correction) int {
	return l.counts[c]
}

// Merge adds every count from other into l.
func (l *Ledger) Merge(other *Ledger) {
	for c, n := range other.counts {
		l.counts[c] += n
	}
}

// Report snapshots the ledger.
func (l *Ledger) Report() Report {
	return Report{
		CaughtStealingNormalized: l.counts[CaughtStealingNormalized],
		Average:                  l.counts[Average],
		OnBase:                   l.counts[OnBase],
		Slugging:                 l.counts[Slugging],
		Combo:                    l.counts[Combo],
	}
}

// Report is a point-in-time copy of a Ledger, serialized as a flat
// counter-name to count mapping.
type Report struct {
	CaughtStealingNormalized int `json:"caught_stealing_normalized"`
	Average                  int `json:"average"`
	OnBase                   int `json:"on_base"`
	Slugging                 int `json:"slugging"`
	Combo                    int `json:"combo"`
}

// Total is the number of corrections of any kind.
func (r Report) Total() int {
	return r.CaughtStealingNormalized + r.Average + r.OnBase + r.Slugging + r.Combo
}

// LogValue groups the counters under one slog attribute.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int(string(CaughtStealingNormalized), r.CaughtStealingNormalized),
		slog.Int(string(Average), r.Average),
		slog.Int(string(OnBase), r.OnBase),
		slog.Int(string(Slugging), r.Slugging),
		slog.Int(string(Combo), r.Combo),
	)
}
