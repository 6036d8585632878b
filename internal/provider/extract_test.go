package provider_test

import (
	"encoding/json"
	"testing"

	"github.com/EnduringBeta/fraction.work/internal/provider"
)

const feedSample = `[
	{
		"Player name": "B Bonds",
		"position": "LF",
		"Games": 1,
		"At-bat": 20,
		"Hits": "5",
		"Caught stealing": "--",
		"AVG": 0.25,
		"On-base Percentage": null,
		"Slugging Percentage": true,
		"Extra": {"nested": 1}
	}
]`

func TestRawPlayerDecode(t *testing.T) {
	var roster []provider.RawPlayer
	if err := json.Unmarshal([]byte(feedSample), &roster); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("got %d records, want 1", len(roster))
	}
	r := roster[0]

	tests := []struct {
		field string
		kind  provider.Kind
	}{
		{provider.FieldPlayerName, provider.KindText},
		{provider.FieldAtBat, provider.KindNumber},
		{provider.FieldHits, provider.KindText},
		{provider.FieldCaughtStealing, provider.KindText},
		{provider.FieldOnBasePercent, provider.KindNull},
		{provider.FieldSluggingPercent, provider.KindOther},
		{provider.FieldOnBasePlusSlugging, provider.KindAbsent},
		{"Extra", provider.KindOther},
	}
	for _, tt := range tests {
		if got := r.Get(tt.field).Kind; got != tt.kind {
			t.Errorf("%q kind = %v, want %v", tt.field, got, tt.kind)
		}
	}

	if n, ok := r.Get(provider.FieldHits).Count(); !ok || n != 5 {
		t.Errorf("numeric text Hits = %d,%v; want 5,true", n, ok)
	}
	if _, ok := r.Get(provider.FieldCaughtStealing).Count(); ok {
		t.Error("sentinel text should not count as a number")
	}
}

func TestRawValueCount(t *testing.T) {
	tests := []struct {
		name string
		v    provider.RawValue
		want int
		ok   bool
	}{
		{"integer", provider.Num(12), 12, true},
		{"zero", provider.Num(0), 0, true},
		{"negative", provider.Num(-1), 0, false},
		{"fractional", provider.Num(1.5), 0, false},
		{"numeric text", provider.Str(" 7 "), 7, true},
		{"dash", provider.Str("—"), 0, false},
		{"empty text", provider.Str(""), 0, false},
		{"absent", provider.RawValue{}, 0, false},
		{"null", provider.RawValue{Kind: provider.KindNull}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Count()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Count() = %d,%v; want %d,%v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRawValueMarshalRoundTrip(t *testing.T) {
	in := provider.RawPlayer{
		provider.FieldPlayerName:     provider.Str("A Judge"),
		provider.FieldAtBat:          provider.Num(550),
		provider.FieldBattingAverage: {Kind: provider.KindNull},
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out provider.RawPlayer
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Get(provider.FieldAtBat).Number != 550 {
		t.Errorf("At-bat = %v, want 550", out.Get(provider.FieldAtBat).Number)
	}
	if out.Get(provider.FieldBattingAverage).Kind != provider.KindNull {
		t.Errorf("AVG kind = %v, want null", out.Get(provider.FieldBattingAverage).Kind)
	}
}
