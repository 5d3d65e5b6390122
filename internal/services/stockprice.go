package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/cache"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/config"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/logger"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	stockSymbol   = "TSLA"
	priceCacheKey = "stock:price:current"
	priceCacheTTL = 5 * time.Minute

	// Prix de secours quand Alpha Vantage est indisponible ou rate-limité
	FallbackPrice = 340.00
)

// Série hebdomadaire de secours
var fallbackWeekly = WeeklyData{
	WeekStartPrice: 338.50,
	WeekEndPrice:   340.00,
	WeekStartDate:  "2024-01-08",
	WeekEndDate:    "2024-01-12",
}

// WeeklyData porte les cours de début et de fin de la semaine courante
type WeeklyData struct {
	WeekStartPrice float64 `json:"weekStartPrice"`
	WeekEndPrice   float64 `json:"weekEndPrice"`
	WeekStartDate  string  `json:"weekStartDate"`
	WeekEndDate    string  `json:"weekEndDate"`
}

// Réponse TIME_SERIES_DAILY d'Alpha Vantage
type dailySeriesResponse struct {
	ErrorMessage string                       `json:"Error Message"`
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
	TimeSeries   map[string]map[string]string `json:"Time Series (Daily)"`
}

// StockPriceService fournit le prix de référence TSLA : validation des
// fourchettes à la soumission et prix de clôture au settlement. Les appels
// sortants passent par un circuit breaker et un rate limiter (quota Alpha
// Vantage très bas) ; en cas d'échec le service retombe sur les données de
// secours plutôt que d'échouer.
type StockPriceService struct {
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	cache   cache.Cache
	baseURL string
}

func NewStockPriceService(cfg *config.Config, c cache.Cache) *StockPriceService {
	return &StockPriceService{
		apiKey: cfg.AlphaVantageAPIKey,
		client: &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "alpha-vantage",
			Timeout: 2 * time.Minute,
		}),
		// Palier gratuit Alpha Vantage : ~5 requêtes/minute
		limiter: rate.NewLimiter(rate.Every(12*time.Second), 2),
		cache:   c,
		baseURL: "https://www.alphavantage.co",
	}
}

// CurrentPrice retourne le dernier cours de clôture connu. Ne retourne
// jamais d'erreur : cache, puis API, puis prix de secours.
func (s *StockPriceService) CurrentPrice(ctx context.Context) float64 {
	if cached, err := s.cache.Get(ctx, priceCacheKey); err == nil {
		if price, err := strconv.ParseFloat(cached, 64); err == nil {
			return price
		}
	}

	series, err := s.fetchDailySeries(ctx)
	if err != nil {
		logger.Warning("stock price unavailable, using fallback: %v", err)
		return FallbackPrice
	}

	dates := sortedDatesDesc(series)
	if len(dates) == 0 {
		logger.Warning("empty time series, using fallback price")
		return FallbackPrice
	}

	price, err := closePrice(series, dates[0])
	if err != nil {
		logger.Warning("could not parse close price: %v", err)
		return FallbackPrice
	}

	_ = s.cache.Set(ctx, priceCacheKey, strconv.FormatFloat(price, 'f', -1, 64), priceCacheTTL)
	return price
}

// WeeklyPrices retourne les cours du lundi et du vendredi de la semaine
// courante, en prenant la date cotée la plus proche si le marché était fermé
func (s *StockPriceService) WeeklyPrices(ctx context.Context, now time.Time) WeeklyData {
	series, err := s.fetchDailySeries(ctx)
	if err != nil {
		logger.Warning("weekly stock data unavailable, using fallback: %v", err)
		return fallbackWeekly
	}

	dates := sortedDatesDesc(series)
	if len(dates) == 0 {
		return fallbackWeekly
	}

	weekStart, _ := utils.WeekWindowFor(now)
	friday := weekStart.AddDate(0, 0, 4)

	mondayStr := weekStart.Format("2006-01-02")
	fridayStr := friday.Format("2006-01-02")

	mondayPrice, err := closestClosePrice(series, dates, mondayStr)
	if err != nil {
		return fallbackWeekly
	}
	fridayPrice, err := closestClosePrice(series, dates, fridayStr)
	if err != nil {
		return fallbackWeekly
	}

	return WeeklyData{
		WeekStartPrice: mondayPrice,
		WeekEndPrice:   fridayPrice,
		WeekStartDate:  mondayStr,
		WeekEndDate:    fridayStr,
	}
}

// InvalidatePrice vide le cache de prix (utilisé après le settlement)
func (s *StockPriceService) InvalidatePrice(ctx context.Context) error {
	return s.cache.Invalidate(ctx, priceCacheKey)
}

func (s *StockPriceService) fetchDailySeries(ctx context.Context) (map[string]map[string]string, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("alpha vantage API key not configured")
	}
	if !s.limiter.Allow() {
		return nil, fmt.Errorf("local rate limit reached")
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		url := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s",
			s.baseURL, stockSymbol, s.apiKey)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var payload dailySeriesResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("could not decode alpha vantage response: %w", err)
		}

		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("alpha vantage API error: %s", payload.ErrorMessage)
		}
		if strings.Contains(payload.Information, "rate limit") {
			return nil, fmt.Errorf("alpha vantage rate limit reached")
		}
		if payload.Note != "" {
			logger.Warning("alpha vantage note: %s", payload.Note)
		}
		if payload.TimeSeries == nil {
			return nil, fmt.Errorf("no time series data in response")
		}

		return payload.TimeSeries, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(map[string]map[string]string), nil
}

func sortedDatesDesc(series map[string]map[string]string) []string {
	dates := make([]string, 0, len(series))
	for date := range series {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

func closePrice(series map[string]map[string]string, date string) (float64, error) {
	day, ok := series[date]
	if !ok {
		return 0, fmt.Errorf("no data for %s", date)
	}
	return strconv.ParseFloat(day["4. close"], 64)
}

// closestClosePrice cherche la date exacte, sinon la date cotée la plus
// proche (week-ends, jours fériés)
func closestClosePrice(series map[string]map[string]string, dates []string, target string) (float64, error) {
	if _, ok := series[target]; ok {
		return closePrice(series, target)
	}

	targetTime, err := time.Parse("2006-01-02", target)
	if err != nil {
		return 0, err
	}

	closest := dates[0]
	minDiff := time.Duration(1<<63 - 1)
	for _, date := range dates {
		dt, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		diff := targetTime.Sub(dt)
		if diff < 0 {
			diff = -diff
		}
		if diff < minDiff {
			minDiff = diff
			closest = date
		}
	}

	return closePrice(series, closest)
}
