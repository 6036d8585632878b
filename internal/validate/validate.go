// Package validate turns raw roster records into canonical players.
//
// Counting stats are treated as ground truth. Rate stats supplied by the
// feed are never trusted: they are recomputed, compared by exact equality,
// and overwritten when they differ, with each repair tallied in a Ledger.
package validate

import (
	"fmt"
	"math"

	"github.com/EnduringBeta/fraction.work/internal/provider"
	"github.com/EnduringBeta/fraction.work/internal/stats"
)

// MalformedRecordError reports a record that lacks a required field or
// carries a value that cannot be a non-negative count.
type MalformedRecordError struct {
	Player string // may be empty if the name itself is bad
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Player == "" {
		return fmt.Sprintf("malformed record: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed record %q: %s: %s", e.Player, e.Field, e.Reason)
}

// Record validates one raw record. Corrections are added to ledger only
// when the record validates; a dropped record leaves ledger untouched.
//
// Errors are *MalformedRecordError or *stats.DefinedMetricError.
func Record(raw provider.RawPlayer, ledger *Ledger) (provider.Player, error) {
	local := NewLedger()

	var p provider.Player
	var err error

	if p.PlayerName, err = text(raw, provider.FieldPlayerName, ""); err != nil {
		return provider.Player{}, err
	}
	name := p.PlayerName

	if p.CaughtStealing, err = caughtStealing(raw, name, local); err != nil {
		return provider.Player{}, err
	}
	if p.Position, err = text(raw, provider.FieldPosition, name); err != nil {
		return provider.Player{}, err
	}

	counts := []struct {
		field string
		dst   *int
	}{
		{provider.FieldGames, &p.Games},
		{provider.FieldAtBat, &p.AtBat},
		{provider.FieldRuns, &p.Runs},
		{provider.FieldHits, &p.Hits},
		{provider.FieldDoubles, &p.Doubles},
		{provider.FieldTriples, &p.Triples},
		{provider.FieldHomeRuns, &p.HomeRuns},
		{provider.FieldRBI, &p.RBI},
		{provider.FieldWalks, &p.Walks},
		{provider.FieldStrikeouts, &p.Strikeouts},
		{provider.FieldStolenBases, &p.StolenBases},
	}
	for _, c := range counts {
		if *c.dst, err = count(raw, c.field, name); err != nil {
			return provider.Player{}, err
		}
	}

	p.BattingAverage = supplied(raw, provider.FieldBattingAverage)
	p.OnBasePercent = supplied(raw, provider.FieldOnBasePercent)
	p.SluggingPercent = supplied(raw, provider.FieldSluggingPercent)
	p.OnBasePlusSlugging = supplied(raw, provider.FieldOnBasePlusSlugging)

	if err := Reconcile(&p, local); err != nil {
		return provider.Player{}, err
	}

	ledger.Merge(local)
	return p, nil
}

// Reconcile recomputes p's rate stats from its counting stats and
// overwrites any that differ, counting each overwrite in ledger. A NaN
// derived value always counts as a mismatch.
//
// Every counting stat must fit the int4 columns; larger values would let
// the singles check wrap around.
func Reconcile(p *provider.Player, ledger *Ledger) error {
	if err := checkRanges(p); err != nil {
		return err
	}

	c := stats.Counting{
		Hits:     p.Hits,
		Doubles:  p.Doubles,
		Triples:  p.Triples,
		HomeRuns: p.HomeRuns,
		AtBat:    p.AtBat,
		Walks:    p.Walks,
	}
	if stats.Singles(c) < 0 {
		return &MalformedRecordError{
			Player: p.PlayerName,
			Field:  "hits",
			Reason: fmt.Sprintf("%d hits is fewer than %d extra-base hits",
				c.Hits, c.Doubles+c.Triples+c.HomeRuns),
		}
	}

	d, err := stats.Compute(c)
	if err != nil {
		return fmt.Errorf("player %q: %w", p.PlayerName, err)
	}

	repair(&p.BattingAverage, d.BattingAverage, Average, ledger)
	repair(&p.OnBasePercent, d.OnBasePercent, OnBase, ledger)
	repair(&p.SluggingPercent, d.SluggingPercent, Slugging, ledger)
	repair(&p.OnBasePlusSlugging, d.OnBasePlusSlugging, Combo, ledger)
	return nil
}

func checkRanges(p *provider.Player) error {
	counts := []struct {
		field string
		n     int
	}{
		{"games", p.Games},
		{"at_bat", p.AtBat},
		{"runs", p.Runs},
		{"hits", p.Hits},
		{"doubles", p.Doubles},
		{"triples", p.Triples},
		{"home_runs", p.HomeRuns},
		{"rbi", p.RBI},
		{"walks", p.Walks},
		{"strikeouts", p.Strikeouts},
		{"stolen_bases", p.StolenBases},
		{"caught_stealing", p.CaughtStealing},
	}
	for _, c := range counts {
		if c.n < 0 || c.n > math.MaxInt32 {
			return &MalformedRecordError{
				Player: p.PlayerName,
				Field:  c.field,
				Reason: fmt.Sprintf("%d is outside 0..%d", c.n, math.MaxInt32),
			}
		}
	}
	return nil
}

func repair(field *float64, canonical float64, kind Correction, ledger *Ledger) {
	if *field == canonical {
		return
	}
	*field = canonical
	ledger.Increment(kind)
}

// caughtStealing accepts a JSON number that is a count. Any other
// representation, text included, is the feed's known defect and becomes 0.
// A number that is negative or fractional is a real error.
func caughtStealing(raw provider.RawPlayer, name string, ledger *Ledger) (int, error) {
	v := raw.Get(provider.FieldCaughtStealing)
	if v.Kind == provider.KindNumber {
		if n, ok := v.Count(); ok {
			return n, nil
		}
		return 0, &MalformedRecordError{
			Player: name,
			Field:  provider.FieldCaughtStealing,
			Reason: "not a non-negative integer",
		}
	}
	ledger.Increment(CaughtStealingNormalized)
	return 0, nil
}

func count(raw provider.RawPlayer, field, name string) (int, error) {
	v := raw.Get(field)
	if n, ok := v.Count(); ok {
		return n, nil
	}
	reason := "not a non-negative integer"
	if v.Kind == provider.KindAbsent || v.Kind == provider.KindNull {
		reason = "missing"
	}
	return 0, &MalformedRecordError{Player: name, Field: field, Reason: reason}
}

func text(raw provider.RawPlayer, field, name string) (string, error) {
	s, ok := raw.Get(field).AsText()
	if !ok || s == "" {
		return "", &MalformedRecordError{Player: name, Field: field, Reason: "missing or empty text"}
	}
	return s, nil
}

// supplied returns the feed's derived value, or NaN when it is not a JSON
// number so that it always counts as a repair.
func supplied(raw provider.RawPlayer, field string) float64 {
	v := raw.Get(field)
	if v.Kind != provider.KindNumber {
		return math.NaN()
	}
	if f, ok := v.Float(); ok {
		return f
	}
	return math.NaN()
}
