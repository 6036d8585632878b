package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/EnduringBeta/fraction.work/internal/api"
	"github.com/EnduringBeta/fraction.work/internal/api/handler"
	"github.com/EnduringBeta/fraction.work/internal/api/respond"
	"github.com/EnduringBeta/fraction.work/internal/cache"
	"github.com/EnduringBeta/fraction.work/internal/config"
	"github.com/EnduringBeta/fraction.work/internal/db"
	"github.com/EnduringBeta/fraction.work/internal/external"
	"github.com/EnduringBeta/fraction.work/internal/provider"
)

// MockStore implements handler.PlayerStore in memory.
type MockStore struct {
	mu          sync.Mutex
	players     map[int64]provider.Player
	nextID      int64
	shouldError bool
	lists       int
}

func newMockStore(players ...provider.Player) *MockStore {
	m := &MockStore{players: make(map[int64]provider.Player), nextID: 1}
	for _, p := range players {
		m.players[p.ID] = p
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	return m
}

func (m *MockStore) HealthCheck(ctx context.Context) error {
	if m.shouldError {
		return context.DeadlineExceeded
	}
	return nil
}

func (m *MockStore) ListPlayers(ctx context.Context) ([]provider.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.shouldError {
		return nil, context.DeadlineExceeded
	}
	var out []provider.Player
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockStore) GetPlayer(ctx context.Context, id int64) (provider.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldError {
		return provider.Player{}, context.DeadlineExceeded
	}
	p, ok := m.players[id]
	if !ok {
		return provider.Player{}, db.ErrNotFound
	}
	return p, nil
}

func (m *MockStore) CreatePlayer(ctx context.Context, p provider.Player) (provider.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldError {
		return provider.Player{}, context.DeadlineExceeded
	}
	p.ID = m.nextID
	m.nextID++
	m.players[p.ID] = p
	return p, nil
}

func (m *MockStore) UpdatePlayer(ctx context.Context, p provider.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[p.ID]; !ok {
		return db.ErrNotFound
	}
	m.players[p.ID] = p
	return nil
}

func (m *MockStore) DeletePlayer(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.players, id)
	return nil
}

// MockDescriber implements handler.Describer.
type MockDescriber struct {
	calls int
	err   error
}

func (m *MockDescriber) Describe(ctx context.Context, p provider.Player) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return p.PlayerName + " had a season.", nil
}

var ann = provider.Player{
	ID: 1, PlayerName: "Ann", Position: "C",
	Games: 10, AtBat: 20, Runs: 3, Hits: 5, Doubles: 1, HomeRuns: 1,
	RBI: 4, Walks: 3,
	BattingAverage: 0.25, OnBasePercent: 8.0 / 23, SluggingPercent: 0.45,
	OnBasePlusSlugging: 8.0/23 + 0.45,
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:      "development",
		CORSAllowOrigins: []string{"http://localhost:3000"},
	}
}

func newTestRouter(store *MockStore, describer handler.Describer) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return api.NewRouter(store, describer, cache.New(true), testConfig(), logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp respond.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp.Error.Code
}

const validBody = `{
	"player_name": "Bo", "position": "SS",
	"games": 12, "at_bat": 20, "runs": 2, "hits": 5, "doubles": 1,
	"triples": 0, "home_runs": 1, "rbi": 3, "walks": 3, "strikeouts": 4,
	"stolen_bases": 1, "caught_stealing": 0,
	"batting_average": 0.999
}`

func TestRoot(t *testing.T) {
	w := do(t, newTestRouter(newMockStore(), nil), "GET", "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `Try \"/players\"`) {
		t.Errorf("root body missing hint: %s", w.Body.String())
	}
}

func TestHealthCheckDB(t *testing.T) {
	store := newMockStore()
	router := newTestRouter(store, nil)

	if w := do(t, router, "GET", "/health/db", ""); w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	store.shouldError = true
	if w := do(t, router, "GET", "/health/db", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

func TestListPlayers(t *testing.T) {
	t.Run("empty list is an array", func(t *testing.T) {
		w := do(t, newTestRouter(newMockStore(), nil), "GET", "/players", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if strings.TrimSpace(w.Body.String()) != "[]" {
			t.Errorf("body = %s, want []", w.Body.String())
		}
	})

	t.Run("cached until mutation", func(t *testing.T) {
		store := newMockStore(ann)
		router := newTestRouter(store, nil)

		first := do(t, router, "GET", "/players", "")
		second := do(t, router, "GET", "/players", "")
		if second.Header().Get("X-Cache") != "HIT" {
			t.Errorf("second list X-Cache = %q, want HIT", second.Header().Get("X-Cache"))
		}
		if store.lists != 1 {
			t.Errorf("store listed %d times, want 1", store.lists)
		}

		req := httptest.NewRequest("GET", "/players", nil)
		req.Header.Set("If-None-Match", first.Header().Get("ETag"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusNotModified {
			t.Errorf("conditional GET status = %d, want 304", w.Code)
		}

		do(t, router, "DELETE", "/players/1", "")
		third := do(t, router, "GET", "/players", "")
		if third.Header().Get("X-Cache") != "MISS" {
			t.Error("cache not purged after delete")
		}
		if strings.TrimSpace(third.Body.String()) != "[]" {
			t.Errorf("list after delete = %s", third.Body.String())
		}
	})

	t.Run("store error", func(t *testing.T) {
		store := newMockStore()
		store.shouldError = true
		w := do(t, newTestRouter(store, nil), "GET", "/players", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "INTERNAL" {
			t.Errorf("code = %s", code)
		}
	})
}

func TestGetPlayer(t *testing.T) {
	router := newTestRouter(newMockStore(ann), nil)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"found", "/players/1", http.StatusOK, ""},
		{"missing", "/players/99", http.StatusNotFound, "NOT_FOUND"},
		{"not a number", "/players/abc", http.StatusBadRequest, "INVALID_ID"},
		{"zero", "/players/0", http.StatusBadRequest, "INVALID_ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, "GET", tt.path, "")
			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}
			if tt.code != "" {
				if code := errorCode(t, w); code != tt.code {
					t.Errorf("code = %s, want %s", code, tt.code)
				}
				return
			}
			var p provider.Player
			if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
				t.Fatalf("failed to decode player: %v", err)
			}
			if p != ann {
				t.Errorf("player = %+v", p)
			}
		})
	}
}

func TestCreatePlayerRecomputesDerivedStats(t *testing.T) {
	store := newMockStore()
	w := do(t, newTestRouter(store, nil), "POST", "/players", validBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var p provider.Player
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("failed to decode player: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("id = %d, want 1", p.ID)
	}
	if p.BattingAverage != 0.25 {
		t.Errorf("batting_average = %v, want 0.25", p.BattingAverage)
	}
	if p.SluggingPercent != 0.45 {
		t.Errorf("slugging_percent = %v, want 0.45", p.SluggingPercent)
	}
	if p.OnBasePlusSlugging != p.OnBasePercent+p.SluggingPercent {
		t.Errorf("on_base_plus_slugging = %v", p.OnBasePlusSlugging)
	}
	if stored := store.players[1]; stored != p {
		t.Errorf("stored %+v, responded %+v", stored, p)
	}
}

func TestCreatePlayerRejects(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"not json", "text/plain", validBody, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{"malformed json", "application/json", `{"player_name":`, http.StatusBadRequest, "INVALID_BODY"},
		{"wrong type", "application/json", `{"games":"many"}`, http.StatusBadRequest, "INVALID_BODY"},
		{"missing fields", "application/json", `{"player_name":"Bo","position":"SS"}`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"negative count", "application/json", strings.Replace(validBody, `"runs": 2`, `"runs": -2`, 1), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"blank name", "application/json", strings.Replace(validBody, `"Bo"`, `"  "`, 1), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"too few hits", "application/json", strings.Replace(validBody, `"hits": 5`, `"hits": 1`, 1), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"count above int4", "application/json", strings.Replace(validBody, `"runs": 2`, `"runs": 2147483648`, 1), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"extra-base hits overflow", "application/json", strings.NewReplacer(
			`"doubles": 1`, `"doubles": 9223372036854775807`,
			`"triples": 0`, `"triples": 9223372036854775807`,
		).Replace(validBody), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"zero at-bat", "application/json", strings.Replace(validBody, `"at_bat": 20`, `"at_bat": 0`, 1), http.StatusBadRequest, "UNDEFINED_METRIC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			req := httptest.NewRequest("POST", "/players", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()
			newTestRouter(store, nil).ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if code := errorCode(t, w); code != tt.code {
				t.Errorf("code = %s, want %s", code, tt.code)
			}
			if len(store.players) != 0 {
				t.Error("rejected player was stored")
			}
		})
	}
}

func TestUpdatePlayer(t *testing.T) {
	t.Run("replaces", func(t *testing.T) {
		store := newMockStore(ann)
		body := strings.Replace(validBody, "{", `{"id": 1,`, 1)
		w := do(t, newTestRouter(store, nil), "PUT", "/players", body)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		got := store.players[1]
		if got.PlayerName != "Bo" || got.StolenBases != 1 || got.BattingAverage != 0.25 {
			t.Errorf("stored %+v", got)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		w := do(t, newTestRouter(newMockStore(ann), nil), "PUT", "/players", validBody)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "VALIDATION_FAILED" {
			t.Errorf("code = %s", code)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		body := strings.Replace(validBody, "{", `{"id": 42,`, 1)
		w := do(t, newTestRouter(newMockStore(ann), nil), "PUT", "/players", body)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", w.Code)
		}
	})
}

func TestDeletePlayer(t *testing.T) {
	store := newMockStore(ann)
	router := newTestRouter(store, nil)

	if w := do(t, router, "DELETE", "/players/1", ""); w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if w := do(t, router, "DELETE", "/players/1", ""); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestGetDescription(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		w := do(t, newTestRouter(newMockStore(ann), nil), "GET", "/players/description/1", "")
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status 503, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "DESCRIPTIONS_DISABLED" {
			t.Errorf("code = %s", code)
		}
	})

	t.Run("generated and cached", func(t *testing.T) {
		describer := &MockDescriber{}
		router := newTestRouter(newMockStore(ann), describer)

		w := do(t, router, "GET", "/players/description/1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		var resp handler.DescriptionResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Message != "Ann had a season." {
			t.Errorf("message = %q", resp.Message)
		}

		do(t, router, "GET", "/players/description/1", "")
		if describer.calls != 1 {
			t.Errorf("describer called %d times, want 1", describer.calls)
		}
	})

	t.Run("missing player", func(t *testing.T) {
		w := do(t, newTestRouter(newMockStore(), &MockDescriber{}), "GET", "/players/description/5", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", w.Code)
		}
	})

	t.Run("throttled", func(t *testing.T) {
		describer := &MockDescriber{err: external.ErrThrottled}
		w := do(t, newTestRouter(newMockStore(ann), describer), "GET", "/players/description/1", "")
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected status 429, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "RATE_LIMITED" {
			t.Errorf("code = %s", code)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	router := api.NewRouter(newMockStore(), nil, cache.New(false), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, do(t, router, "GET", "/health", "").Code)
	}
	if codes[0] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status sequence = %v, want 200 then 429", codes)
	}
}
