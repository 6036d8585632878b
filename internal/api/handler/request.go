package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/EnduringBeta/fraction.work/internal/api/respond"
	"github.com/EnduringBeta/fraction.work/internal/provider"
)

const maxBodyBytes = 1 << 20

// playerRequest is the body of POST and PUT /players. Every counting stat
// is required because PUT is a full replacement. Derived stats are
// optional and always recomputed.
type playerRequest struct {
	ID         *int64 `json:"id" validate:"omitempty,min=1"`
	PlayerName string `json:"player_name" validate:"required,max=255"`
	Position   string `json:"position" validate:"required,max=64"`

	Games          *int `json:"games" validate:"required,min=0,max=2147483647"`
	AtBat          *int `json:"at_bat" validate:"required,min=0,max=2147483647"`
	Runs           *int `json:"runs" validate:"required,min=0,max=2147483647"`
	Hits           *int `json:"hits" validate:"required,min=0,max=2147483647"`
	Doubles        *int `json:"doubles" validate:"required,min=0,max=2147483647"`
	Triples        *int `json:"triples" validate:"required,min=0,max=2147483647"`
	HomeRuns       *int `json:"home_runs" validate:"required,min=0,max=2147483647"`
	RBI            *int `json:"rbi" validate:"required,min=0,max=2147483647"`
	Walks          *int `json:"walks" validate:"required,min=0,max=2147483647"`
	Strikeouts     *int `json:"strikeouts" validate:"required,min=0,max=2147483647"`
	StolenBases    *int `json:"stolen_bases" validate:"required,min=0,max=2147483647"`
	CaughtStealing *int `json:"caught_stealing" validate:"required,min=0,max=2147483647"`

	BattingAverage     *float64 `json:"batting_average"`
	OnBasePercent      *float64 `json:"on_base_percent"`
	SluggingPercent    *float64 `json:"slugging_percent"`
	OnBasePlusSlugging *float64 `json:"on_base_plus_slugging"`
}

// toPlayer converts a validated request. Missing derived stats become NaN
// so reconciliation always fills them in.
func (req *playerRequest) toPlayer() provider.Player {
	p := provider.Player{
		PlayerName:         req.PlayerName,
		Position:           req.Position,
		Games:              *req.Games,
		AtBat:              *req.AtBat,
		Runs:               *req.Runs,
		Hits:               *req.Hits,
		Doubles:            *req.Doubles,
		Triples:            *req.Triples,
		HomeRuns:           *req.HomeRuns,
		RBI:                *req.RBI,
		Walks:              *req.Walks,
		Strikeouts:         *req.Strikeouts,
		StolenBases:        *req.StolenBases,
		CaughtStealing:     *req.CaughtStealing,
		BattingAverage:     floatOrNaN(req.BattingAverage),
		OnBasePercent:      floatOrNaN(req.OnBasePercent),
		SluggingPercent:    floatOrNaN(req.SluggingPercent),
		OnBasePlusSlugging: floatOrNaN(req.OnBasePlusSlugging),
	}
	if req.ID != nil {
		p.ID = *req.ID
	}
	return p
}

func floatOrNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodePlayer reads and validates a player body. On failure it has
// already written the error response and returns false.
func (h *Handler) decodePlayer(w http.ResponseWriter, r *http.Request) (*playerRequest, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		respond.WriteError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Request must be JSON")
		return nil, false
	}

	var req playerRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Request body is not a valid player", err.Error())
		return nil, false
	}

	req.PlayerName = strings.TrimSpace(req.PlayerName)
	req.Position = strings.TrimSpace(req.Position)
	if err := h.bodyCheck.Struct(&req); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid player fields", describeValidation(err))
		return nil, false
	}
	return &req, true
}

// describeValidation flattens validator errors into "field msg; ..." form.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			msg = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at most %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at most %s", fe.Param())
			}
		default:
			msg = "is invalid"
		}
		msgs = append(msgs, fe.Field()+" "+msg)
	}
	return strings.Join(msgs, "; ")
}
