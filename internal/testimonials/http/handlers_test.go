package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuwebai/tuweb-backend/internal/auth"
	"github.com/tuwebai/tuweb-backend/internal/testimonials/domain"
)

type memStore struct {
	items map[string]*domain.Testimonial
}

func newMemStore() *memStore {
	return &memStore{items: map[string]*domain.Testimonial{}}
}

func (m *memStore) Create(_ context.Context, t *domain.Testimonial) (*domain.Testimonial, error) {
	cp := *t
	cp.ID = fmt.Sprintf("t-%d", len(m.items)+1)
	cp.Approved = false
	m.items[cp.ID] = &cp
	return &cp, nil
}

func (m *memStore) ListApproved(_ context.Context, limit int) ([]domain.Testimonial, error) {
	var out []domain.Testimonial
	for _, t := range m.items {
		if t.Approved {
			out = append(out, *t)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) Approve(_ context.Context, id string) error {
	t, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Approved = true
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func newTestRouter(store Store, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if role != "" {
		r.Use(func(c *gin.Context) {
			c.Set(auth.CtxUserRole, role)
			c.Next()
		})
	}
	h := New(store)
	h.RegisterPublic(r.Group("/api/testimonials"))
	h.RegisterAdmin(r.Group("/api/testimonials"))
	return r
}

func TestCreateTestimonial(t *testing.T) {
	t.Run("valid testimonial created unapproved", func(t *testing.T) {
		store := newMemStore()
		router := newTestRouter(store, "")

		body := `{"name":"Carla","company":"Estudio C","testimonial":"Excelente trabajo, lo recomiendo"}`
		req := httptest.NewRequest("POST", "/api/testimonials", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp struct {
			Success bool               `json:"success"`
			Data    domain.Testimonial `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.False(t, resp.Data.Approved, "new testimonials wait for moderation")
		assert.NotEmpty(t, resp.Data.ID)
	})

	t.Run("short text rejected", func(t *testing.T) {
		router := newTestRouter(newMemStore(), "")

		short := strings.Repeat("x", domain.MinLength-1)
		body := fmt.Sprintf(`{"name":"Carla","testimonial":%q}`, short)
		req := httptest.NewRequest("POST", "/api/testimonials", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListTestimonials_OnlyApproved(t *testing.T) {
	store := newMemStore()
	pending, err := store.Create(context.Background(), &domain.Testimonial{Name: "A", Testimonial: "pendiente de revisar"})
	require.NoError(t, err)
	_ = pending
	approved, err := store.Create(context.Background(), &domain.Testimonial{Name: "B", Testimonial: "publicado y visible"})
	require.NoError(t, err)
	require.NoError(t, store.Approve(context.Background(), approved.ID))

	router := newTestRouter(store, "")
	req := httptest.NewRequest("GET", "/api/testimonials", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data []domain.Testimonial `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "B", resp.Data[0].Name)
}

func TestModeration_RequiresAdmin(t *testing.T) {
	store := newMemStore()
	created, err := store.Create(context.Background(), &domain.Testimonial{Name: "A", Testimonial: "pendiente de revisar"})
	require.NoError(t, err)

	t.Run("client role forbidden", func(t *testing.T) {
		router := newTestRouter(store, "client")
		req := httptest.NewRequest("PUT", "/api/testimonials/"+created.ID+"/approve", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("admin approves and deletes", func(t *testing.T) {
		router := newTestRouter(store, "admin")

		req := httptest.NewRequest("PUT", "/api/testimonials/"+created.ID+"/approve", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, store.items[created.ID].Approved)

		req = httptest.NewRequest("DELETE", "/api/testimonials/"+created.ID, nil)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, store.items, created.ID)
	})

	t.Run("approving a missing id is a 404", func(t *testing.T) {
		router := newTestRouter(store, "admin")
		req := httptest.NewRequest("PUT", "/api/testimonials/nope/approve", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
