package article_test

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/common/pagination"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/article"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/repository"
	artUC "newsdesk/internal/usecase/article"
)

const (
	testSecret = "handler-test-secret-key-0123456789abcdef"
	articleID  = "8f14e45f-ceea-467f-8c1d-1a7e40b3cdef"
	createdID  = "b2c3d4e5-f6a7-4b8c-9d0e-1f2a3b4c5d6e"
)

// stubRepo is an in-memory ArticleRepository for handler tests.
type stubRepo struct {
	mu        sync.Mutex
	data      map[string]repository.ArticleWithMeta
	viewCalls int
}

func newStub() *stubRepo {
	return &stubRepo{data: map[string]repository.ArticleWithMeta{}}
}

func (s *stubRepo) put(id string) {
	s.data[id] = repository.ArticleWithMeta{
		Article: &entity.Article{
			ID:            id,
			Title:         "Derby preview",
			Summary:       "The big one",
			Content:       "Full preview text.",
			PublishedDate: time.Now(),
		},
		AuthorName:   "alice",
		CategoryName: "Premier League",
		Tags:         []string{"derby"},
	}
}

func (s *stubRepo) List(_ context.Context, _ repository.ArticleQuery) ([]repository.ArticleWithMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.ArticleWithMeta, 0, len(s.data))
	for _, v := range s.data {
		out = append(out, v)
	}
	return out, nil
}

func (s *stubRepo) Count(context.Context, repository.ArticleFilters) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.data)), nil
}

func (s *stubRepo) Get(_ context.Context, id string) (*repository.ArticleWithMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.data[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (s *stubRepo) Create(_ context.Context, a *entity.Article, tags []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = createdID
	s.data[a.ID] = repository.ArticleWithMeta{Article: a, Tags: tags}
	return a.ID, nil
}

func (s *stubRepo) Update(_ context.Context, id string, _ repository.ArticleUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[id]
	return ok, nil
}

func (s *stubRepo) SoftDelete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; ok {
		delete(s.data, id)
		return true, nil
	}
	return false, nil
}

func (s *stubRepo) IncrementViews(context.Context, string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewCalls++
	return nil
}

func (s *stubRepo) views() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewCalls
}

func (s *stubRepo) Popular(context.Context, int) ([]repository.ArticleWithMeta, error) {
	return nil, nil
}

func (s *stubRepo) Recent(context.Context, int) ([]repository.ArticleWithMeta, error) {
	return nil, nil
}

func (s *stubRepo) PublishedSince(context.Context, time.Time) ([]repository.ArticleWithMeta, error) {
	return nil, nil
}

func newMux(t *testing.T, repo *stubRepo) *http.ServeMux {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := http.NewServeMux()
	article.Register(mux, &artUC.Service{Repo: repo, Logger: logger}, pagination.DefaultConfig(), logger)
	return mux
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(&entity.User{ID: "admin-1", Role: entity.RoleAdmin})
	require.NoError(t, err)
	return token
}

func TestListArticles(t *testing.T) {
	repo := newStub()
	repo.put(articleID)
	mux := newMux(t, repo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles?page=1&limit=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		} `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
		} `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Derby preview", resp.Data[0].Title)
	assert.Empty(t, resp.Data[0].Content, "list rows must omit content")
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestListArticles_BadQueryParams(t *testing.T) {
	mux := newMux(t, newStub())

	tests := []string{
		"/articles?page=0",
		"/articles?page=abc",
		"/articles?limit=0",
		"/articles?limit=500",
		"/articles?sortBy=passwords",
		"/articles?sortOrder=sideways",
	}
	for _, target := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}

func TestGetArticle(t *testing.T) {
	repo := newStub()
	repo.put(articleID)
	mux := newMux(t, repo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/"+articleID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Full preview text.")

	// The view counter runs async off the request path.
	assert.Eventually(t, func() bool { return repo.views() == 1 },
		2*time.Second, 10*time.Millisecond)
}

func TestGetArticle_InvalidID(t *testing.T) {
	mux := newMux(t, newStub())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetArticle_NotFound(t *testing.T) {
	mux := newMux(t, newStub())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/"+articleID, nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateArticle_RequiresAdmin(t *testing.T) {
	mux := newMux(t, newStub())
	body := `{"title":"T","summary":"S","content":"C","categoryId":"cat-1","publishedDate":"2026-08-01T00:00:00Z"}`

	// No token at all.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A plain user.
	userToken, err := auth.GenerateToken(&entity.User{ID: "u1", Role: entity.RoleUser})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateArticle(t *testing.T) {
	mux := newMux(t, newStub())

	body := `{
		"title": "Cup final preview",
		"summary": "Who takes the trophy",
		"content": "Full preview.",
		"categoryId": "cat-1",
		"publishedDate": "2026-08-01T00:00:00Z",
		"tags": "derby, transfers"
	}`
	req := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		AuthorID string   `json:"authorId"`
		Tags     []string `json:"tags"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "admin-1", resp.AuthorID, "author must come from the token, not the body")
	assert.Equal(t, []string{"derby", "transfers"}, resp.Tags, "comma-separated tags must be split")
}

func TestCreateArticle_ValidationFailure(t *testing.T) {
	mux := newMux(t, newStub())

	req := httptest.NewRequest(http.MethodPost, "/articles",
		strings.NewReader(`{"summary":"S","content":"C","categoryId":"cat-1","publishedDate":"2026-08-01T00:00:00Z"}`))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateArticle_EmptyBodyRejected(t *testing.T) {
	repo := newStub()
	repo.put(articleID)
	mux := newMux(t, repo)

	req := httptest.NewRequest(http.MethodPut, "/articles/"+articleID, strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateArticle(t *testing.T) {
	repo := newStub()
	repo.put(articleID)
	mux := newMux(t, repo)

	req := httptest.NewRequest(http.MethodPut, "/articles/"+articleID,
		strings.NewReader(`{"title":"Updated title"}`))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestUpdateArticle_NotFound(t *testing.T) {
	mux := newMux(t, newStub())

	req := httptest.NewRequest(http.MethodPut, "/articles/"+articleID,
		strings.NewReader(`{"title":"Updated title"}`))
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteArticle(t *testing.T) {
	repo := newStub()
	repo.put(articleID)
	mux := newMux(t, repo)

	req := httptest.NewRequest(http.MethodDelete, "/articles/"+articleID, nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Deleting again reports not found.
	req = httptest.NewRequest(http.MethodDelete, "/articles/"+articleID, nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
