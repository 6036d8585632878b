package roster_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EnduringBeta/fraction.work/internal/provider"
	"github.com/EnduringBeta/fraction.work/internal/provider/roster"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, status int, body string) *roster.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return roster.NewClient(srv.URL, 600, quietLogger())
}

func TestFetchRoster(t *testing.T) {
	c := serve(t, http.StatusOK, `[
		{"Player name": "Aaron Judge", "At-bat": 550, "Caught stealing": "--"},
		{"Player name": "Juan Soto", "At-bat": 576}
	]`)

	players, err := c.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("got %d players, want 2", len(players))
	}
	if name, _ := players[1].Get(provider.FieldPlayerName).AsText(); name != "Juan Soto" {
		t.Errorf("second player = %q", name)
	}
	if players[0].Get(provider.FieldCaughtStealing).Kind != provider.KindText {
		t.Error("caught stealing sentinel should decode as text")
	}
}

func TestFetchRosterEnvelope(t *testing.T) {
	c := serve(t, http.StatusOK, `{"data": [{"Player name": "Mike Trout"}]}`)

	players, err := c.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("got %d players, want 1", len(players))
	}
}

func TestFetchRosterErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"server error", http.StatusInternalServerError, `oops`, http.StatusInternalServerError},
		{"not found", http.StatusNotFound, `{}`, http.StatusNotFound},
		{"invalid json", http.StatusOK, `[{"Player name":`, http.StatusOK},
		{"object without data", http.StatusOK, `{"players": []}`, http.StatusOK},
		{"scalar body", http.StatusOK, `42`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := serve(t, tt.status, tt.body)

			_, err := c.FetchRoster(context.Background())
			var fe *roster.FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FetchError, got %v", err)
			}
			if fe.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", fe.Status, tt.wantStatus)
			}
		})
	}
}

func TestFetchRosterUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := roster.NewClient(url, 600, quietLogger()).FetchRoster(context.Background())
	var fe *roster.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Status != 0 {
		t.Errorf("status = %d, want 0 for transport failure", fe.Status)
	}
}
