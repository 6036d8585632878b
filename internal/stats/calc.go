// Package stats computes derived batting rate statistics from raw
// box-score counting stats.
package stats

import "fmt"

// Counting holds the counting stats the rate formulas consume.
type Counting struct {
	Hits     int
	Doubles  int
	Triples  int
	HomeRuns int
	AtBat    int
	Walks    int
}

// Derived holds the four rate statistics.
type Derived struct {
	BattingAverage     float64 `json:"batting_average"`
	OnBasePercent      float64 `json:"on_base_percent"`
	SluggingPercent    float64 `json:"slugging_percent"`
	OnBasePlusSlugging float64 `json:"on_base_plus_slugging"`
}

// DefinedMetricError is returned when the rate statistics are undefined
// because there were no at-bats.
type DefinedMetricError struct {
	AtBat int
}

func (e *DefinedMetricError) Error() string {
	return fmt.Sprintf("rate statistics undefined for at_bat=%d", e.AtBat)
}

// Singles returns hits that were not doubles, triples, or home runs.
// A negative result means the counting stats are inconsistent.
func Singles(c Counting) int {
	return c.Hits - c.Doubles - c.Triples - c.HomeRuns
}

// TotalBases weights each hit by the bases it earned.
func TotalBases(c Counting) int {
	return Singles(c) + 2*c.Doubles + 3*c.Triples + 4*c.HomeRuns
}

// Compute returns AVG, OBP, SLG, and OPS for c.
//
// OBP uses the simplified plate-appearance model at_bat + walks; since
// at_bat > 0 is required, its denominator is always positive.
func Compute(c Counting) (Derived, error) {
	if c.AtBat <= 0 {
		return Derived{}, &DefinedMetricError{AtBat: c.AtBat}
	}

	atBat := float64(c.AtBat)
	avg := float64(c.Hits) / atBat
	obp := float64(c.Hits+c.Walks) / float64(c.AtBat+c.Walks)
	slg := float64(TotalBases(c)) / atBat

	return Derived{
		BattingAverage:     avg,
		OnBasePercent:      obp,
		SluggingPercent:    slg,
		OnBasePlusSlugging: obp + slg,
	}, nil
}
