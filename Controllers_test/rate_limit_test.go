package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalRateLimiterBlocksBursts(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	// The limiter allows 50 requests per second per client.
	for i := 0; i < 50; i++ {
		w := doJSON(t, r, "GET", "/ping", nil)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := doJSON(t, r, "GET", "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
