package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/cache"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStockService(t *testing.T, handler http.HandlerFunc) (*StockPriceService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewStockPriceService(&config.Config{AlphaVantageAPIKey: "test-key"}, cache.NewMemory())
	svc.baseURL = server.URL

	return svc, server
}

func dailySeriesJSON() string {
	return `{
		"Time Series (Daily)": {
			"2026-01-09": {"4. close": "245.00"},
			"2026-01-08": {"4. close": "243.10"},
			"2026-01-05": {"4. close": "240.50"}
		}
	}`
}

func TestCurrentPriceFromAPI(t *testing.T) {
	svc, _ := newTestStockService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TSLA", r.URL.Query().Get("symbol"))
		fmt.Fprint(w, dailySeriesJSON())
	})

	price := svc.CurrentPrice(context.Background())

	// Dernière clôture connue
	assert.Equal(t, 245.00, price)
}

func TestCurrentPriceServedFromCache(t *testing.T) {
	calls := 0
	svc, _ := newTestStockService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, dailySeriesJSON())
	})

	ctx := context.Background()
	svc.CurrentPrice(ctx)
	svc.CurrentPrice(ctx)

	assert.Equal(t, 1, calls)
}

func TestCurrentPriceFallbackWithoutAPIKey(t *testing.T) {
	svc := NewStockPriceService(&config.Config{}, cache.NewMemory())

	assert.Equal(t, FallbackPrice, svc.CurrentPrice(context.Background()))
}

func TestCurrentPriceFallbackOnAPIError(t *testing.T) {
	svc, _ := newTestStockService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Error Message": "Invalid API call"}`)
	})

	assert.Equal(t, FallbackPrice, svc.CurrentPrice(context.Background()))
}

func TestCurrentPriceFallbackOnRateLimitNotice(t *testing.T) {
	svc, _ := newTestStockService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Information": "You have hit your rate limit for the day"}`)
	})

	assert.Equal(t, FallbackPrice, svc.CurrentPrice(context.Background()))
}

func TestWeeklyPrices(t *testing.T) {
	svc, _ := newTestStockService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dailySeriesJSON())
	})

	// Mercredi de la semaine du 5 janvier 2026
	now := time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC)
	weekly := svc.WeeklyPrices(context.Background(), now)

	assert.Equal(t, "2026-01-05", weekly.WeekStartDate)
	assert.Equal(t, "2026-01-09", weekly.WeekEndDate)
	assert.Equal(t, 240.50, weekly.WeekStartPrice)
	assert.Equal(t, 245.00, weekly.WeekEndPrice)
}

func TestWeeklyPricesFallbackOnError(t *testing.T) {
	svc, _ := newTestStockService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	weekly := svc.WeeklyPrices(context.Background(), time.Now())
	assert.Equal(t, fallbackWeekly, weekly)
}

func TestInvalidatePrice(t *testing.T) {
	calls := 0
	svc, _ := newTestStockService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, dailySeriesJSON())
	})

	ctx := context.Background()
	svc.CurrentPrice(ctx)
	require.NoError(t, svc.InvalidatePrice(ctx))
	svc.CurrentPrice(ctx)

	assert.Equal(t, 2, calls)
}
