package hunter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/qed-outreach/contact-pipeline/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.HunterConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	}, 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	return client, server
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(config.HunterConfig{BaseURL: "https://api.hunter.io"}, time.Second, zap.NewNop())
	assert.Error(t, err)
}

func TestVerifySuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, verifyPath, r.URL.Path)
		assert.Equal(t, "john.doe@acme.com", r.URL.Query().Get("email"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"status":"valid","score":92}}`))
	})

	verdict, err := client.Verify(context.Background(), "john.doe@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "valid", verdict.Status)
	assert.Equal(t, 92, verdict.Score)
}

func TestVerifyErrorsPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"errors":[{"id":"too_many_requests","code":429,"details":"Rate limit exceeded"}]}`))
	})

	_, err := client.Verify(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rate limit exceeded")
	assert.Contains(t, err.Error(), "429")
}

func TestVerifyNonJSONResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>Bad Gateway</html>"))
	})

	_, err := client.Verify(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-JSON")
}

func TestVerifyOKWithoutData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	_, err := client.Verify(context.Background(), "a@x.com")
	assert.Error(t, err)
}

func TestUsageSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, accountPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"requests":{"searches":{"used":12},"verifications":{"used":34}}}}`))
	})

	usage, err := client.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, usage.UsedSearches)
	assert.Equal(t, 34, usage.UsedVerifications)
}

func TestUsageErrorsPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"id":"unauthorized","code":401,"details":"Invalid API key"}]}`))
	})

	_, err := client.Usage(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}
