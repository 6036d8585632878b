package stats_test

import (
	"errors"
	"math"
	"testing"

	"github.com/EnduringBeta/fraction.work/internal/stats"
)

func TestCompute(t *testing.T) {
	c := stats.Counting{Hits: 5, Doubles: 1, Triples: 0, HomeRuns: 1, AtBat: 20, Walks: 3}

	got, err := stats.Compute(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.BattingAverage != 0.25 {
		t.Errorf("batting average = %v, want 0.25", got.BattingAverage)
	}
	if want := 8.0 / 23.0; got.OnBasePercent != want {
		t.Errorf("on-base percent = %v, want %v", got.OnBasePercent, want)
	}
	if got.SluggingPercent != 0.45 {
		t.Errorf("slugging percent = %v, want 0.45", got.SluggingPercent)
	}
	if math.Abs(got.OnBasePlusSlugging-0.7978) > 0.0001 {
		t.Errorf("OPS = %v, want ~0.7978", got.OnBasePlusSlugging)
	}
	if got.OnBasePlusSlugging != got.OnBasePercent+got.SluggingPercent {
		t.Errorf("OPS %v is not OBP + SLG", got.OnBasePlusSlugging)
	}
}

func TestSinglesAndTotalBases(t *testing.T) {
	c := stats.Counting{Hits: 5, Doubles: 1, Triples: 0, HomeRuns: 1, AtBat: 20, Walks: 3}
	if got := stats.Singles(c); got != 3 {
		t.Errorf("Singles = %d, want 3", got)
	}
	if got := stats.TotalBases(c); got != 9 {
		t.Errorf("TotalBases = %d, want 9", got)
	}
}

func TestComputeDeterministic(t *testing.T) {
	tests := []stats.Counting{
		{Hits: 5, Doubles: 1, HomeRuns: 1, AtBat: 20, Walks: 3},
		{Hits: 187, Doubles: 31, Triples: 4, HomeRuns: 44, AtBat: 561, Walks: 82},
		{Hits: 0, AtBat: 1},
		{Hits: 1, Triples: 1, AtBat: 3, Walks: 0},
	}

	for _, c := range tests {
		first, err := stats.Compute(c)
		if err != nil {
			t.Fatalf("Compute(%+v): %v", c, err)
		}
		second, _ := stats.Compute(c)
		if math.Float64bits(first.BattingAverage) != math.Float64bits(second.BattingAverage) ||
			math.Float64bits(first.OnBasePercent) != math.Float64bits(second.OnBasePercent) ||
			math.Float64bits(first.SluggingPercent) != math.Float64bits(second.SluggingPercent) ||
			math.Float64bits(first.OnBasePlusSlugging) != math.Float64bits(second.OnBasePlusSlugging) {
			t.Errorf("Compute(%+v) not bit-identical: %+v vs %+v", c, first, second)
		}
	}
}

func TestComputeUndefined(t *testing.T) {
	for _, ab := range []int{0, -1} {
		_, err := stats.Compute(stats.Counting{Hits: 0, AtBat: ab, Walks: 4})
		var dme *stats.DefinedMetricError
		if !errors.As(err, &dme) {
			t.Fatalf("at_bat=%d: expected DefinedMetricError, got %v", ab, err)
		}
		if dme.AtBat != ab {
			t.Errorf("AtBat = %d, want %d", dme.AtBat, ab)
		}
	}
}
