package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cattychan/stock-scanner/internal/model"
)

const defaultChartBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches daily bars from the Yahoo Finance chart API.
type YahooClient struct {
	baseURL string
	client  *http.Client
}

// NewYahooClient creates a client with the given per-request timeout.
func NewYahooClient(timeout time.Duration) *YahooClient {
	return &YahooClient{
		baseURL: defaultChartBaseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewYahooClientWithBaseURL is used by tests to point at a fake server.
func NewYahooClientWithBaseURL(baseURL string, timeout time.Duration) *YahooClient {
	c := NewYahooClient(timeout)
	c.baseURL = baseURL
	return c
}

// chartResponse mirrors the subset of the chart API payload we read.
// Price/volume arrays may contain nulls on halted days; those entries are
// skipped.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyBars fetches the daily series for one ticker.
func (y *YahooClient) DailyBars(ctx context.Context, ticker string, lookback Lookback) (*model.BarSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d&events=history",
		y.baseURL, url.PathEscape(ticker), lookback)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("chart %s: create request: %w", ticker, err)
	}
	// The chart endpoint rejects requests without a browser-ish UA.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	req.Header.Set("Accept", "application/json")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart %s: fetch: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("chart %s: %w", ticker, ErrNoData)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart %s: unexpected status %d", ticker, resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("chart %s: decode: %w", ticker, err)
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s: %w", ticker, payload.Chart.Error.Code, ErrNoData)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result: %w", ticker, ErrNoData)
	}

	res := payload.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 || len(res.Timestamp) == 0 {
		return nil, fmt.Errorf("chart %s: no quotes: %w", ticker, ErrNoData)
	}
	quote := res.Indicators.Quote[0]

	series := &model.BarSeries{
		Ticker: ticker,
		Bars:   make([]model.Bar, 0, len(res.Timestamp)),
	}
	for i, ts := range res.Timestamp {
		if i >= len(quote.Close) || i >= len(quote.Open) ||
			i >= len(quote.High) || i >= len(quote.Low) {
			continue // degraded payload, arrays shorter than timestamp
		}
		if quote.Close[i] == nil || quote.Open[i] == nil ||
			quote.High[i] == nil || quote.Low[i] == nil {
			continue // halted or partial day
		}
		var vol int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			vol = *quote.Volume[i]
		}
		series.Bars = append(series.Bars, model.Bar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: vol,
		})
	}

	if len(series.Bars) == 0 {
		return nil, fmt.Errorf("chart %s: all bars null: %w", ticker, ErrNoData)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("chart %s: %w", ticker, err)
	}
	return series, nil
}
