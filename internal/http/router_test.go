package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"cheatsheets/internal/cheatsheet"
	"cheatsheets/internal/ingest"
	"cheatsheets/internal/service"
	"cheatsheets/internal/service/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type nopIngester struct{}

func (nopIngester) Run(_ context.Context, ids []string) (*ingest.Report, error) {
	return &ingest.Report{Requested: len(ids)}, nil
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(&Deps{
		Cheatsheets: mocks.NewMockCheatsheetService(ctrl),
		DB:          okPinger{},
	})

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockCheatsheetService(ctrl)
	mockService.EXPECT().List(gomock.Any()).Return([]cheatsheet.Meta{}, nil).AnyTimes()
	mockService.EXPECT().Get(gomock.Any(), "rust").
		Return(&cheatsheet.Cheatsheet{ID: "rust", Title: "Rust"}, nil).AnyTimes()
	mockService.EXPECT().Get(gomock.Any(), "cobol").Return(nil, service.ErrNotFound).AnyTimes()
	mockService.EXPECT().LatestRun(gomock.Any()).Return(nil, service.ErrNotFound).AnyTimes()

	router := NewRouter(&Deps{
		Cheatsheets: mockService,
		DB:          okPinger{},
		Ingester:    nopIngester{},
		SeedIDs:     func() ([]string, error) { return []string{}, nil },
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "GET /api/health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "GET /api/cheatsheets", method: http.MethodGet, path: "/api/cheatsheets", wantStatus: http.StatusOK},
		{name: "GET /api/cheatsheets/{id}", method: http.MethodGet, path: "/api/cheatsheets/rust", wantStatus: http.StatusOK},
		{name: "GET unknown cheatsheet", method: http.MethodGet, path: "/api/cheatsheets/cobol", wantStatus: http.StatusNotFound},
		{name: "GET /api/runs/latest without runs", method: http.MethodGet, path: "/api/runs/latest", wantStatus: http.StatusNotFound},
		{name: "POST /api/ingest", method: http.MethodPost, path: "/api/ingest", wantStatus: http.StatusAccepted},
		{name: "GET /api/ingest method not allowed", method: http.MethodGet, path: "/api/ingest", wantStatus: http.StatusMethodNotAllowed},
		{name: "POST /api/cheatsheets method not allowed", method: http.MethodPost, path: "/api/cheatsheets", wantStatus: http.StatusMethodNotAllowed},
		{name: "GET page", method: http.MethodGet, path: "/cheatsheets/rust", wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_IngestDisabledWithoutIngester(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(&Deps{
		Cheatsheets: mocks.NewMockCheatsheetService(ctrl),
		DB:          okPinger{},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ingest", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Router POST /api/ingest status = %v, want 404", w.Code)
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(&Deps{
		Cheatsheets: mocks.NewMockCheatsheetService(ctrl),
		DB:          okPinger{},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check CORS headers are present
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}

// TestRouter_APIRoutesDocumented checks that every /api route carries a
// swagger:route annotation in the handlers package.
func TestRouter_APIRoutesDocumented(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(&Deps{
		Cheatsheets: mocks.NewMockCheatsheetService(ctrl),
		DB:          okPinger{},
		Ingester:    nopIngester{},
		SeedIDs:     func() ([]string, error) { return nil, nil },
	})

	files, err := filepath.Glob(filepath.Join("..", "handlers", "*.go"))
	if err != nil || len(files) == 0 {
		t.Fatalf("failed to list handler sources: %v", err)
	}
	var sources strings.Builder
	for _, f := range files {
		if strings.HasSuffix(f, "_test.go") {
			continue
		}
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("failed to read %s: %v", f, err)
		}
		sources.Write(data)
	}

	routes, ok := router.(chi.Routes)
	if !ok {
		t.Fatalf("NewRouter() returned %T, want chi.Routes", router)
	}

	checked := 0
	err = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if !strings.HasPrefix(route, "/api/") {
			return nil
		}
		checked++
		annotation := "swagger:route " + method + " " + route + " "
		if !strings.Contains(sources.String(), annotation) {
			t.Errorf("route %s %s has no %q annotation", method, route, strings.TrimSpace(annotation))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk() error = %v", err)
	}
	if checked < 5 {
		t.Errorf("checked %d api routes, want at least 5", checked)
	}
}
