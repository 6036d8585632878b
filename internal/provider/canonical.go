// Package provider defines the raw and canonical player shapes. Roster
// sources decode into RawPlayer; the validator turns RawPlayer into Player,
// which is the only shape the store and the API ever see.
package provider

// Player is the canonical, persisted player record. Derived fields are
// always recomputed from the counting stats before a write.
type Player struct {
	ID         int64  `json:"id" db:"id"`
	PlayerName string `json:"player_name" db:"player_name"`
	Position   string `json:"position" db:"position"`

	Games          int `json:"games" db:"games"`
	AtBat          int `json:"at_bat" db:"at_bat"`
	Runs           int `json:"runs" db:"runs"`
	Hits           int `json:"hits" db:"hits"`
	Doubles        int `json:"doubles" db:"doubles"`
	Triples        int `json:"triples" db:"triples"`
	HomeRuns       int `json:"home_runs" db:"home_runs"`
	RBI            int `json:"rbi" db:"rbi"`
	Walks          int `json:"walks" db:"walks"`
	Strikeouts     int `json:"strikeouts" db:"strikeouts"`
	StolenBases    int `json:"stolen_bases" db:"stolen_bases"`
	CaughtStealing int `json:"caught_stealing" db:"caught_stealing"`

	BattingAverage     float64 `json:"batting_average" db:"batting_average"`
	OnBasePercent      float64 `json:"on_base_percent" db:"on_base_percent"`
	SluggingPercent    float64 `json:"slugging_percent" db:"slugging_percent"`
	OnBasePlusSlugging float64 `json:"on_base_plus_slugging" db:"on_base_plus_slugging"`
}

// Roster feed field names. The feed uses descriptive labels (some of them
// wrong, e.g. "third baseman" carries triples) rather than column names.
const (
	FieldPlayerName         = "Player name"
	FieldPosition           = "position"
	FieldGames              = "Games"
	FieldAtBat              = "At-bat"
	FieldRuns               = "Runs"
	FieldHits               = "Hits"
	FieldDoubles            = "Double (2B)"
	FieldTriples            = "third baseman"
	FieldHomeRuns           = "home run"
	FieldRBI                = "run batted in"
	FieldWalks              = "a walk"
	FieldStrikeouts         = "Strikeouts"
	FieldStolenBases        = "stolen base"
	FieldCaughtStealing     = "Caught stealing"
	FieldBattingAverage     = "AVG"
	FieldOnBasePercent      = "On-base Percentage"
	FieldSluggingPercent    = "Slugging Percentage"
	FieldOnBasePlusSlugging = "On-base Plus Slugging"
)

// RawPlayer is one record exactly as the roster feed delivered it, keyed by
// feed field name. Nothing about it is trusted until validated.
type RawPlayer map[string]RawValue

// Get returns the value for field, or an absent value.
func (r RawPlayer) Get(field string) RawValue {
	return r[field]
}
