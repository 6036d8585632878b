// Package seed ensures the players table exists and loads it, at most once,
// with validated roster data.
package seed

import (
	"fmt"

	"github.com/EnduringBeta/fraction.work/internal/validate"
)

// State is where the initializer ended up. It is never persisted; every
// run re-derives it from the row count.
type State string

const (
	StateUninitialized State = "UNINITIALIZED"
	StateSchemaReady   State = "SCHEMA_READY"
	StateEmpty         State = "EMPTY" // schema present, no rows, retry allowed
	StateSeeded        State = "SEEDED"
	StateSeedFailed    State = "SEED_FAILED"
)

// Result tracks counts and errors from one initializer run.
type Result struct {
	BatchID     string          `json:"batch_id,omitempty"`
	State       State           `json:"state,omitempty"`
	Skipped     bool            `json:"skipped"` // rows already present, nothing fetched or written
	Fetched     int             `json:"fetched"`
	Valid       int             `json:"valid"`
	Rejected    int             `json:"rejected"`
	Inserted    int             `json:"inserted"`
	Corrections validate.Report `json:"corrections"`
	Errors      []string        `json:"errors,omitempty"`
}

// AddError records an error message.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"state=%s fetched=%d valid=%d rejected=%d inserted=%d corrections=%d",
		r.State, r.Fetched, r.Valid, r.Rejected, r.Inserted, r.Corrections.Total(),
	)
}
