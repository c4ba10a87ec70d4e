package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/lineshift/lineshift/internal/infrastructure/repository/memory"
	"github.com/lineshift/lineshift/internal/platform/cache"
	"github.com/lineshift/lineshift/internal/platform/logging"
	"github.com/lineshift/lineshift/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	gameRepo := memory.NewGameRepository(store)
	oddsRepo := memory.NewOddsRepository(store)
	cacheStore := cache.NewStore(time.Minute)
	logger := logging.NewNop()

	ingestion := usecase.NewIngestionService(store, gameRepo, cacheStore, logger)
	movement := usecase.NewMovementService(gameRepo, oddsRepo, 4)
	dashboard := usecase.NewDashboardService(gameRepo, oddsRepo, cacheStore)
	playerStats := usecase.NewPlayerStatsService(memory.NewPlayerStatsRepository())

	handler := NewHandler(ingestion, movement, dashboard, playerStats, nil, logger)
	return NewRouter(handler, logger, []string{"*"}, "job-secret")
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const oddsBatch = `{
	"sport": "nfl",
	"observations": [{
		"home_team": "Kansas City Chiefs",
		"away_team": "Buffalo Bills",
		"start_time": "8:20 PM",
		"provider": "DraftKings-Web",
		"spread": "%s",
		"total": "47.5",
		"moneyline_home": "-150",
		"moneyline_away": "+130"
	}]
}`

func TestIngestThenDetectMovement(t *testing.T) {
	router := newTestRouter(t)

	if rec := postJSON(t, router, "/v1/ingestion/odds", strings.Replace(oddsBatch, "%s", "-3", 1)); rec.Code != http.StatusOK {
		t.Fatalf("first ingest: status %d body %s", rec.Code, rec.Body.String())
	}
	if rec := postJSON(t, router, "/v1/ingestion/odds", strings.Replace(oddsBatch, "%s", "-2.5", 1)); rec.Code != http.StatusOK {
		t.Fatalf("second ingest: status %d body %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+url.PathEscape("Bills@Chiefs 8:20PM")+"/movement", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("movement: status %d body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data usecase.MovementReport `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal movement response: %v", err)
	}
	if body.Data.Status != usecase.StatusMovement {
		t.Fatalf("status = %q, want movement", body.Data.Status)
	}
	if len(body.Data.Changes) != 1 || body.Data.Changes[0].Field != "spread" {
		t.Fatalf("changes = %+v, want single spread change", body.Data.Changes)
	}
}

func TestIngestRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/ingestion/odds", `{"sport": "nfl"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing observations", rec.Code)
	}

	rec = postJSON(t, router, "/v1/ingestion/odds", `{"sport": "nfl", "unknown_field": 1, "observations": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for unknown field", rec.Code)
	}
}

func TestMovementUnknownGameReturns404(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+url.PathEscape("Jets@Dolphins 1:00PM")+"/movement", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListGamesBySport(t *testing.T) {
	router := newTestRouter(t)

	if rec := postJSON(t, router, "/v1/ingestion/odds", strings.Replace(oddsBatch, "%s", "-3", 1)); rec.Code != http.StatusOK {
		t.Fatalf("ingest: status %d body %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/sports/nfl/games", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data []gameLinesDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal games response: %v", err)
	}
	if len(body.Data) != 1 {
		t.Fatalf("games = %d, want 1", len(body.Data))
	}
	entry := body.Data[0]
	if entry.Game.GameID != "Bills@Chiefs 8:20PM" || entry.Latest == nil || *entry.Latest.Spread != "-3" {
		t.Fatalf("entry = %+v", entry)
	}
}

func TestRefreshJobRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/internal/jobs/refresh", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without token", rec.Code)
	}
}
