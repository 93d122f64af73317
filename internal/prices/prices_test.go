package prices

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetch_OmitsUnknownCoins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Query().Get("ids"), "0x2::gov::GOV")
		// Feed only knows one of the two requested coins.
		_ = json.NewEncoder(w).Encode([]Quote{
			{CoinType: "0x2::gov::GOV", Price: 1.25, Change24h: -3.1},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	quotes, err := c.Fetch(context.Background(), []string{"0x2::gov::GOV", "0xdead::x::X"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.Equal(t, 1.25, quotes["0x2::gov::GOV"].Price)
	_, ok := quotes["0xdead::x::X"]
	require.False(t, ok)
}

func TestFetch_DisabledFeed(t *testing.T) {
	c := New("")
	quotes, err := c.Fetch(context.Background(), []string{"0x2::gov::GOV"})
	require.NoError(t, err)
	require.Empty(t, quotes)
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Fetch(context.Background(), []string{"0x2::gov::GOV"})
	require.Error(t, err)
}
