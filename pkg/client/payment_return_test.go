package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentIDFromReturn(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  string
	}{
		{"payment_id wins", "payment_id=111&collection_id=222", "111"},
		{"collection_id fallback", "collection_id=222&status=approved", "222"},
		{"camelCase alias", "paymentId=333", "333"},
		{"literal null skipped", "payment_id=null&collection_id=444", "444"},
		{"literal undefined skipped", "payment_id=undefined&paymentId=555", "555"},
		{"whitespace trimmed", "payment_id=%20666%20", "666"},
		{"nothing usable", "status=approved&payment_id=null", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.want, PaymentIDFromReturn(q))
		})
	}
}

func TestResolvePaymentReturn_SingleFetch(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"status":"approved","amount":49999,"currency":"ARS"}}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	q, _ := url.ParseQuery("payment_id=123456&status=approved")
	st, err := c.ResolvePaymentReturn(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "approved", st.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one status request")
}

func TestResolvePaymentReturn_Cancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		_, _ = w.Write([]byte(`{"success":true,"data":{"status":"approved"}}`))
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := New(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		q, _ := url.ParseQuery("payment_id=123456")
		_, err := c.ResolvePaymentReturn(ctx, q)
		done <- err
	}()

	<-started
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled lookup never returned")
	}
}

func TestResolvePaymentReturn_NoID(t *testing.T) {
	c := New("http://unused.invalid")
	q, _ := url.ParseQuery("status=approved")
	_, err := c.ResolvePaymentReturn(context.Background(), q)
	assert.Error(t, err)
}
