package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"MetalsWatch/internal/model"
)

// SpotSource implements Source using the Yahoo Finance chart API and the
// COMEX/NYMEX futures tickers for the four metals.
type SpotSource struct {
	Client    *http.Client
	BaseURL   string
	SymbolMap map[model.Symbol]string
}

const defaultSpotBaseURL = "https://query1.finance.yahoo.com"

// NewSpotSource creates a new spot price fetcher. baseURL overrides the
// Yahoo endpoint (used by tests); pass "" for the default.
func NewSpotSource(baseURL, proxyURL string) *SpotSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = defaultSpotBaseURL
	}
	return &SpotSource{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: baseURL,
		SymbolMap: map[model.Symbol]string{
			model.SymbolGold:      "GC=F",
			model.SymbolSilver:    "SI=F",
			model.SymbolPlatinum:  "PL=F",
			model.SymbolPalladium: "PA=F",
		},
	}
}

func (f *SpotSource) Name() string { return "spot" }

func (f *SpotSource) ticker(symbol model.Symbol) (string, error) {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped, nil
	}
	return "", fmt.Errorf("spot: no ticker for symbol %s", symbol)
}

// spotChart is the response structure from the Yahoo Finance chart API.
type spotChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string  `json:"currency"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				RegularMarketTime    int64   `json:"regularMarketTime"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []interface{} `json:"open"`
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *SpotSource) fetchChart(ctx context.Context, symbol model.Symbol, interval, rng string) (*spotChart, error) {
	ticker, err := f.ticker(symbol)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(ticker), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spot fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("spot read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spot: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart spotChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("spot decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("spot api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("spot: no data returned")
	}
	return &chart, nil
}

func (f *SpotSource) GetQuote(ctx context.Context, symbol model.Symbol) (model.Quote, error) {
	chart, err := f.fetchChart(ctx, symbol, "1d", "1d")
	if err != nil {
		return model.Quote{}, err
	}

	result := chart.Chart.Result[0]
	meta := result.Meta
	if meta.RegularMarketPrice == 0 {
		return model.Quote{}, fmt.Errorf("spot: no price data for %s", symbol)
	}

	open := meta.ChartPreviousClose
	if len(result.Indicators.Quote) > 0 {
		for _, v := range result.Indicators.Quote[0].Open {
			if o := toFloat(v); o != 0 {
				open = o
				break
			}
		}
	}

	ts := time.Now()
	if meta.RegularMarketTime > 0 {
		ts = time.Unix(meta.RegularMarketTime, 0)
	}

	change := meta.RegularMarketPrice - meta.ChartPreviousClose
	pct := 0.0
	if meta.ChartPreviousClose != 0 {
		pct = change / meta.ChartPreviousClose * 100
	}
	return model.Quote{
		Symbol:    symbol,
		Currency:  meta.Currency,
		Price:     meta.RegularMarketPrice,
		PriceGram: meta.RegularMarketPrice / model.GramsPerTroyOunce,
		Timestamp: ts,
		PrevClose: meta.ChartPreviousClose,
		Open:      open,
		Low:       meta.RegularMarketDayLow,
		High:      meta.RegularMarketDayHigh,
		Change:    change,
		ChangePct: pct,
	}, nil
}

// GetHistory ignores the reference quote; the real API carries its own
// continuity.
func (f *SpotSource) GetHistory(ctx context.Context, symbol model.Symbol, window model.Window, _ model.Quote) ([]model.PricePoint, error) {
	interval, rng := "1d", "3mo"
	switch window {
	case model.WindowDay:
		interval, rng = "1h", "1d"
	case model.WindowWeek:
		interval, rng = "1d", "1mo"
	case model.WindowMonth:
		interval, rng = "1d", "3mo"
	default:
		return nil, fmt.Errorf("spot: unknown window %q", window)
	}

	chart, err := f.fetchChart(ctx, symbol, interval, rng)
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("spot: no history returned for %s", symbol)
	}

	closes := result.Indicators.Quote[0].Close
	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) {
			break
		}
		c := toFloat(closes[i])
		if c == 0 {
			continue // skip null bars (holidays etc.)
		}
		points = append(points, model.PricePoint{Time: time.Unix(ts, 0), Price: c})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("spot: no usable history points for %s", symbol)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	if max := window.Points(); len(points) > max {
		points = points[len(points)-max:]
	}
	return points, nil
}
