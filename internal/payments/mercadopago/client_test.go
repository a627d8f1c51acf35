package mercadopago

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuwebai/tuweb-backend/internal/payments/domain"
)

func TestCreatePreference(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody preferenceRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pref-abc","init_point":"https://mp.example/init"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "test-token")
	pref, err := c.CreatePreference(context.Background(), &domain.CheckoutRequest{
		Title:    "Plan Pro",
		Amount:   49999,
		Currency: "ARS",
		Email:    "buyer@example.com",
	}, "pay-123", "https://tuweb-ai.com")
	require.NoError(t, err)

	assert.Equal(t, "/checkout/preferences", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "pref-abc", pref.ID)
	assert.Equal(t, "https://mp.example/init", pref.InitPoint)

	require.Len(t, gotBody.Items, 1)
	assert.Equal(t, "Plan Pro", gotBody.Items[0].Title)
	assert.Equal(t, float64(49999), gotBody.Items[0].UnitPrice)
	assert.Equal(t, "pay-123", gotBody.ExternalReference)
	assert.Equal(t, "https://tuweb-ai.com/pago-exitoso", gotBody.BackURLs["success"])
	assert.Equal(t, "https://tuweb-ai.com/webhook/mercadopago", gotBody.NotificationURL)
	assert.Equal(t, "buyer@example.com", gotBody.Payer["email"])
}

func TestGetPayment(t *testing.T) {
	t.Run("decodes payment resource", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payments/12345", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":12345,"status":"approved","transaction_amount":49999,"currency_id":"ARS","external_reference":"pay-123"}`))
		}))
		t.Cleanup(srv.Close)

		c := NewClient(srv.URL, "test-token")
		p, err := c.GetPayment(context.Background(), "12345")
		require.NoError(t, err)
		assert.Equal(t, int64(12345), p.ID)
		assert.Equal(t, "approved", p.Status)
		assert.Equal(t, "pay-123", p.ExternalReference)
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		c := NewClient(srv.URL, "test-token")
		_, err := c.GetPayment(context.Background(), "99999")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("other errors carry status and payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid access token"}`))
		}))
		t.Cleanup(srv.Close)

		c := NewClient(srv.URL, "bad-token")
		_, err := c.GetPayment(context.Background(), "12345")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "invalid access token")
	})

	t.Run("id is path escaped", func(t *testing.T) {
		var gotRaw string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRaw = r.URL.RawPath
			if gotRaw == "" {
				gotRaw = r.URL.Path
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		c := NewClient(srv.URL, "test-token")
		_, _ = c.GetPayment(context.Background(), "../admin")
		assert.NotContains(t, gotRaw, "/admin")
	})
}
