package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"feedback-desk/internal/handlers"
	"feedback-desk/internal/models"
	"feedback-desk/internal/repository"
	"feedback-desk/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Publish(ctx context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

type brokenStorage struct{}

func (brokenStorage) Read(ctx context.Context) ([]byte, bool, error) {
	return nil, false, errors.New("disk gone")
}

func (brokenStorage) Write(ctx context.Context, data []byte) error {
	return errors.New("disk gone")
}

func newRouter(t *testing.T, s storage.Storage, n *recordingNotifier) http.Handler {
	t.Helper()
	repo := repository.NewFeedbackRepo(s, repository.WithClock(func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}))

	var h *handlers.FeedbackHandler
	if n != nil {
		h = handlers.NewFeedbackHandler(repo, n)
	} else {
		h = handlers.NewFeedbackHandler(repo, nil)
	}

	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type listResponse struct {
	Feedback []models.Feedback `json:"feedback"`
	Count    int               `json:"count"`
}

func TestFeedbackHandler_ListFeedback(t *testing.T) {
	router := newRouter(t, storage.NewMemory(), nil)

	w := do(t, router, http.MethodGet, "/feedback", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp listResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 8, resp.Count)
	assert.Equal(t, "6", resp.Feedback[0].ID)
}

func TestFeedbackHandler_ListFeedback_Filters(t *testing.T) {
	router := newRouter(t, storage.NewMemory(), nil)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount int
	}{
		{"rating and category", "?rating=5&category=Product", http.StatusOK, 2},
		{"search", "?search=ALICE", http.StatusOK, 1},
		{"all placeholders", "?rating=all&category=all", http.StatusOK, 8},
		{"bad rating", "?rating=five", http.StatusBadRequest, 0},
		{"bad category", "?category=Billing", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodGet, "/feedback"+tt.query, "")
			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				return
			}
			var resp listResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantCount, resp.Count)
			assert.Len(t, resp.Feedback, tt.wantCount)
		})
	}
}

func TestFeedbackHandler_SubmitFeedback_Success(t *testing.T) {
	n := &recordingNotifier{}
	router := newRouter(t, storage.NewMemoryWith([]byte("[]")), n)

	body := `{"customerName":"  Jane Doe ","email":"jane@example.com","rating":4,"category":"Support","comments":"Quick reply, thanks"}`
	w := do(t, router, http.MethodPost, "/feedback", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Feedback models.Feedback `json:"feedback"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Feedback.ID)
	assert.Equal(t, "Jane Doe", resp.Feedback.CustomerName)
	assert.Equal(t, models.StatusNew, resp.Feedback.Status)
	assert.Equal(t, models.CategorySupport, resp.Feedback.Category)

	assert.Eventually(t, func() bool { return n.count() == 1 }, time.Second, 10*time.Millisecond)

	w = do(t, router, http.MethodGet, "/feedback/"+resp.Feedback.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFeedbackHandler_SubmitFeedback_Validation(t *testing.T) {
	n := &recordingNotifier{}
	router := newRouter(t, storage.NewMemoryWith([]byte("[]")), n)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"customerName":`, "invalid request body"},
		{"missing name", `{"customerName":"   ","email":"a@b.co","rating":3,"category":"Product","comments":"x"}`, "customerName is required"},
		{"bad email", `{"customerName":"A","email":"nope","rating":3,"category":"Product","comments":"x"}`, "email must be a valid email address"},
		{"rating too high", `{"customerName":"A","email":"a@b.co","rating":6,"category":"Product","comments":"x"}`, "rating must be at most 5"},
		{"no rating", `{"customerName":"A","email":"a@b.co","category":"Product","comments":"x"}`, "rating is required"},
		{"unknown category", `{"customerName":"A","email":"a@b.co","rating":3,"category":"Billing","comments":"x"}`, "category must be one of Product, Service, Support"},
		{"long comments", `{"customerName":"A","email":"a@b.co","rating":3,"category":"Product","comments":"` + strings.Repeat("x", 1001) + `"}`, "comments must be at most 1000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/feedback", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}

	w := do(t, router, http.MethodGet, "/feedback", "")
	var resp listResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 0, resp.Count, "rejected submissions must not be stored")
	assert.Equal(t, 0, n.count())
}

func TestFeedbackHandler_GetFeedback_NotFound(t *testing.T) {
	router := newRouter(t, storage.NewMemory(), nil)

	w := do(t, router, http.MethodGet, "/feedback/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedbackHandler_DeleteFeedback(t *testing.T) {
	router := newRouter(t, storage.NewMemory(), nil)

	w := do(t, router, http.MethodDelete, "/feedback/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":true}`, w.Body.String())

	w = do(t, router, http.MethodDelete, "/feedback/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":false}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/feedback/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedbackHandler_UpdateStatus(t *testing.T) {
	router := newRouter(t, storage.NewMemory(), nil)

	w := do(t, router, http.MethodPatch, "/feedback/3/status", `{"status":"Resolved"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":true,"status":"Resolved"}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/feedback/3", "")
	var f models.Feedback
	require.NoError(t, json.NewDecoder(w.Body).Decode(&f))
	assert.Equal(t, models.StatusResolved, f.Status)

	w = do(t, router, http.MethodPatch, "/feedback/nonexistent/status", `{"status":"Resolved"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":false,"status":"Resolved"}`, w.Body.String())

	w = do(t, router, http.MethodPatch, "/feedback/3/status", `{"status":"Archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackHandler_GetStats(t *testing.T) {
	router := newRouter(t, storage.NewMemoryWith([]byte("[]")), nil)

	w := do(t, router, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, float64(0), stats["total"])
	assert.Equal(t, float64(0), stats["avgRating"])
	assert.Equal(t, map[string]interface{}{"Product": float64(0), "Service": float64(0), "Support": float64(0)}, stats["byCategory"])
	assert.Equal(t, map[string]interface{}{"1": float64(0), "2": float64(0), "3": float64(0), "4": float64(0), "5": float64(0)}, stats["byRating"])
	assert.Equal(t, map[string]interface{}{"New": float64(0), "Read": float64(0), "Resolved": float64(0)}, stats["byStatus"])
	assert.Equal(t, []interface{}{}, stats["recent"])
}

func TestFeedbackHandler_StorageFailure(t *testing.T) {
	router := newRouter(t, brokenStorage{}, nil)

	tests := []struct {
		method, target, body, want string
	}{
		{http.MethodGet, "/feedback", "", "could not load feedback"},
		{http.MethodGet, "/feedback/1", "", "could not load feedback"},
		{http.MethodGet, "/stats", "", "could not load feedback"},
		{http.MethodDelete, "/feedback/1", "", "could not save feedback"},
		{http.MethodPatch, "/feedback/1/status", `{"status":"Read"}`, "could not save feedback"},
		{http.MethodPost, "/feedback", `{"customerName":"A","email":"a@b.co","rating":3,"category":"Product","comments":"x"}`, "could not save feedback"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := do(t, router, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.want+`"}`, w.Body.String())
		})
	}
}
