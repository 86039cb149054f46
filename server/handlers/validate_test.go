package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tazeverywhere/dataquery/pkg/config"
	"github.com/tazeverywhere/dataquery/pkg/connection"
	"github.com/tazeverywhere/dataquery/pkg/dsl"
	"github.com/tazeverywhere/dataquery/pkg/i18n"
	"github.com/tazeverywhere/dataquery/pkg/logging"
	"github.com/tazeverywhere/dataquery/pkg/query"
	"github.com/tazeverywhere/dataquery/server/apierror"
	"github.com/tazeverywhere/dataquery/server/types"
)

// setupTestRouter creates a router serving the validate handler over a seeded DuckDB.
func setupTestRouter(t *testing.T) (http.Handler, *connection.Manager) {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("failed to open DuckDB: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close DB: %v", err)
		}
	})

	mgr := connection.NewManager(db)
	ctx := context.Background()
	for _, stmt := range []string{
		"CREATE TABLE pages (uid INTEGER, title VARCHAR, hidden BOOLEAN)",
		"INSERT INTO pages VALUES (1, 'Home', false), (2, 'About', false)",
	} {
		if _, err := mgr.Exec(ctx, stmt); err != nil {
			t.Fatalf("setup %q failed: %v", stmt, err)
		}
	}

	bundle, err := i18n.NewBundle("en")
	if err != nil {
		t.Fatalf("failed to create bundle: %v", err)
	}

	handler := NewValidateHandler(dsl.NewCompiler(), query.NewExecutor(mgr), bundle, logging.Discard())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Get(config.ValidateRoute, handler.Validate)
	r.Post(config.ValidateRoute, handler.Validate)
	r.Get(config.HealthRoute, Health)
	return r, mgr
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) types.ValidateResponse {
	t.Helper()
	var resp types.ValidateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func getRequest(q string) *http.Request {
	return httptest.NewRequest(http.MethodGet, config.ValidateRoute+"?query="+url.QueryEscape(q), nil)
}

// TestValidateHandler_Validate tests the validate endpoint across parameter sources.
func TestValidateHandler_Validate(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		name          string
		request       func() *http.Request
		wantSuccess   bool
		wantSeverity  []string
		checkResponse func(*testing.T, types.ValidateResponse)
	}{
		{
			name:         "GETQuery",
			request:      func() *http.Request { return getRequest("SELECT title FROM pages WHERE uid = 1") },
			wantSuccess:  true,
			wantSeverity: []string{"ok", "ok"},
			checkResponse: func(t *testing.T, resp types.ValidateResponse) {
				if resp.SQL != "select title from pages where uid = 1" {
					t.Errorf("SQL = %q", resp.SQL)
				}
				if resp.ExecutedSQL != "select title from pages where uid = 1 limit 1" {
					t.Errorf("ExecutedSQL = %q", resp.ExecutedSQL)
				}
				if len(resp.RowType) != 1 || resp.RowType[0].Name != "title" {
					t.Errorf("RowType = %+v", resp.RowType)
				}
				if resp.ReportID == "" {
					t.Error("ReportID is empty")
				}
			},
		},
		{
			name: "POSTForm",
			request: func() *http.Request {
				form := url.Values{config.QueryParameter: {"SELECT * FROM pages"}}
				req := httptest.NewRequest(http.MethodPost, config.ValidateRoute, strings.NewReader(form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return req
			},
			wantSuccess:  true,
			wantSeverity: []string{"ok", "warning", "ok"},
		},
		{
			name: "POSTJSON",
			request: func() *http.Request {
				body, _ := json.Marshal(types.ValidateRequest{Query: "SELECT title FROM missing_pages"})
				req := httptest.NewRequest(http.MethodPost, config.ValidateRoute, bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			wantSuccess:  false,
			wantSeverity: []string{"ok", "error"},
			checkResponse: func(t *testing.T, resp types.ValidateResponse) {
				if !strings.Contains(resp.Diagnostics[1].Message, "missing_pages") {
					t.Errorf("execution message %q lacks the driver text", resp.Diagnostics[1].Message)
				}
			},
		},
		{
			name:         "SyntaxError",
			request:      func() *http.Request { return getRequest("SELET title FROM pages") },
			wantSuccess:  false,
			wantSeverity: []string{"error"},
			checkResponse: func(t *testing.T, resp types.ValidateResponse) {
				want := types.Diagnostic{Severity: "error", Title: "Query parsing failed", Message: "The query contains a syntax error."}
				if resp.Diagnostics[0] != want {
					t.Errorf("diagnostic = %+v, want %+v", resp.Diagnostics[0], want)
				}
				if resp.SQL != "" || resp.ExecutedSQL != "" {
					t.Errorf("SQL should be empty on compile failure, got %q / %q", resp.SQL, resp.ExecutedSQL)
				}
			},
		},
		{
			name:         "MissingParameter",
			request:      func() *http.Request { return httptest.NewRequest(http.MethodGet, config.ValidateRoute, nil) },
			wantSuccess:  false,
			wantSeverity: []string{"error"},
			checkResponse: func(t *testing.T, resp types.ValidateResponse) {
				if resp.Diagnostics[0].Message != "The query is empty." {
					t.Errorf("message = %q", resp.Diagnostics[0].Message)
				}
			},
		},
		{
			name: "GermanCatalog",
			request: func() *http.Request {
				req := getRequest("SELET title FROM pages")
				req.Header.Set("Accept-Language", "de")
				return req
			},
			wantSuccess:  false,
			wantSeverity: []string{"error"},
			checkResponse: func(t *testing.T, resp types.ValidateResponse) {
				if resp.Diagnostics[0].Title != "Parsen der Abfrage fehlgeschlagen" {
					t.Errorf("title = %q, want German", resp.Diagnostics[0].Title)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, tt.request())

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}
			resp := decodeResponse(t, rec)

			if resp.Success != tt.wantSuccess {
				t.Errorf("Success = %v, want %v", resp.Success, tt.wantSuccess)
			}
			var got []string
			for _, d := range resp.Diagnostics {
				got = append(got, d.Severity)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantSeverity, ",") {
				t.Fatalf("severities = %v, want %v (%+v)", got, tt.wantSeverity, resp.Diagnostics)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

// TestValidateHandler_HTML tests flash message rendering.
func TestValidateHandler_HTML(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet,
		config.ValidateRoute+"?format=html&query="+url.QueryEscape("SELECT title FROM pages"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if got := strings.Count(rec.Body.String(), "alert-success"); got != 2 {
		t.Errorf("rendered %d success messages, want 2:\n%s", got, rec.Body.String())
	}
}

// TestValidateHandler_TransportErrors tests requests rejected before validation.
func TestValidateHandler_TransportErrors(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		name     string
		request  func() *http.Request
		wantCode string
		status   int
	}{
		{
			name:     "UnknownFormat",
			request:  func() *http.Request { return httptest.NewRequest(http.MethodGet, config.ValidateRoute+"?format=xml", nil) },
			wantCode: apierror.CodeInvalidParameter,
			status:   http.StatusBadRequest,
		},
		{
			name: "MalformedJSON",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, config.ValidateRoute, strings.NewReader("{"))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			wantCode: apierror.CodeInvalidParameter,
			status:   http.StatusBadRequest,
		},
		{
			name: "UnsupportedContentType",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, config.ValidateRoute, strings.NewReader("<query/>"))
				req.Header.Set("Content-Type", "application/xml")
				return req
			},
			wantCode: apierror.CodeUnsupportedMedia,
			status:   http.StatusUnsupportedMediaType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, tt.request())

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var resp apierror.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

// TestValidateHandler_DryRunKeepsData tests that validating a DELETE changes nothing.
func TestValidateHandler_DryRunKeepsData(t *testing.T) {
	router, mgr := setupTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, getRequest("DELETE FROM pages WHERE uid = 1"))

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("dry-run failed: %+v", resp.Diagnostics)
	}

	var n int
	if err := mgr.QueryRow(context.Background(), "SELECT COUNT(*) FROM pages").Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("page count = %d, want 2", n)
	}
}

// TestHealth tests the health endpoint.
func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, config.HealthRoute, nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("health = %d %q, want 200 OK", rec.Code, rec.Body.String())
	}
}

// TestRateLimited tests the rate limit rejection body.
func TestRateLimited(t *testing.T) {
	rec := httptest.NewRecorder()
	RateLimited(rec, httptest.NewRequest(http.MethodGet, config.ValidateRoute, nil))

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}
