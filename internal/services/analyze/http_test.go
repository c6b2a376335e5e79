package analyze

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T) (*Service, *chi.Mux) {
	t.Helper()
	svc := New(Config{})
	r := chi.NewRouter()
	svc.MountRoutes(r)
	return svc, r
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	_, r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestReport_BeforeAnyRun(t *testing.T) {
	t.Parallel()

	_, r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/report", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCreateRun_ZipUpload(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("messages/inbox/ana/message_1.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(threadDoc)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	_, r := newTestRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/runs", &buf)
	req.Header.Set("Content-Type", "application/zip")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data Snapshot `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Messaging == nil || env.Data.Messaging.Overview.TotalMessages != 2 {
		t.Fatalf("snapshot = %+v", env.Data)
	}

	// report is now available
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/report", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}
}

func TestCreateRun_EmptyBody(t *testing.T) {
	t.Parallel()

	_, r := newTestRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/runs", strings.NewReader(""))
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateRun_JSONDocuments(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(map[string]any{
		"documents": []map[string]string{
			{"name": "message_1.json", "content": threadDoc},
			{"name": "ai_conversations.json", "content": threadDoc},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	_, r := newTestRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/runs/documents", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data Snapshot `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	// the skip-listed document must not contribute a second conversation
	if env.Data.Messaging.Overview.TotalConversations != 1 {
		t.Fatalf("conversations = %d, want 1", env.Data.Messaging.Overview.TotalConversations)
	}
}

func TestCreateRun_JSONValidation(t *testing.T) {
	t.Parallel()

	_, r := newTestRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/runs/documents", strings.NewReader(`{"documents":[]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	if rec.Code == http.StatusCreated {
		t.Fatal("empty document list must not start a run")
	}
}
