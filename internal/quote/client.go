// Package quote is the boundary to the market-data provider (Yahoo
// Finance's public JSON API). Only the fields the dashboard renders are
// decoded; everything else in the provider payloads is ignored. Absent
// values stay nil and format as "N/A" downstream.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"

	summaryModules = "summaryDetail,financialData,defaultKeyStatistics,assetProfile,price,summaryProfile"
)

// Client calls the provider over HTTP. The zero value is not usable; build
// one with NewClient. BaseURL is configurable so tests can point the client
// at a local server.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a provider client. baseURL may be empty to use the real
// provider. Outbound calls are bounded by a 10s client timeout on top of
// any request context deadline.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// Num is a provider numeric field. The API wraps numbers as
// {"raw": 12.3, "fmt": "12.30"}; only the raw value is kept.
type Num struct {
	Raw *float64 `json:"raw"`
}

// Val returns the underlying value, nil when the provider omitted it.
func (n Num) Val() *float64 { return n.Raw }

// Summary aggregates the quoteSummary modules the dashboard uses.
type Summary struct {
	SummaryDetail struct {
		PreviousClose               Num `json:"previousClose"`
		Open                        Num `json:"open"`
		DayLow                      Num `json:"dayLow"`
		DayHigh                     Num `json:"dayHigh"`
		FiftyTwoWeekLow             Num `json:"fiftyTwoWeekLow"`
		FiftyTwoWeekHigh            Num `json:"fiftyTwoWeekHigh"`
		Volume                      Num `json:"volume"`
		AverageVolume               Num `json:"averageVolume"`
		AverageVolume10Days         Num `json:"averageVolume10days"`
		MarketCap                   Num `json:"marketCap"`
		TrailingPE                  Num `json:"trailingPE"`
		ForwardPE                   Num `json:"forwardPE"`
		DividendYield               Num `json:"dividendYield"`
		TrailingAnnualDividendYield Num `json:"trailingAnnualDividendYield"`
		DividendRate                Num `json:"dividendRate"`
		Beta                        Num `json:"beta"`
	} `json:"summaryDetail"`
	FinancialData struct {
		ReturnOnEquity    Num `json:"returnOnEquity"`
		ReturnOnAssets    Num `json:"returnOnAssets"`
		ProfitMargins     Num `json:"profitMargins"`
		OperatingMargins  Num `json:"operatingMargins"`
		GrossMargins      Num `json:"grossMargins"`
		EbitdaMargins     Num `json:"ebitdaMargins"`
		TotalCash         Num `json:"totalCash"`
		TotalDebt         Num `json:"totalDebt"`
		TotalRevenue      Num `json:"totalRevenue"`
		DebtToEquity      Num `json:"debtToEquity"`
		CurrentRatio      Num `json:"currentRatio"`
		QuickRatio        Num `json:"quickRatio"`
		TotalCashPerShare Num `json:"totalCashPerShare"`
		RevenuePerShare   Num `json:"revenuePerShare"`
		RevenueGrowth     Num `json:"revenueGrowth"`
		EarningsGrowth    Num `json:"earningsGrowth"`
	} `json:"financialData"`
	KeyStats struct {
		TrailingPE              Num `json:"trailingPE"`
		ForwardPE               Num `json:"forwardPE"`
		PriceToBook             Num `json:"priceToBook"`
		PriceToSales            Num `json:"priceToSalesTrailing12Months"`
		PegRatio                Num `json:"pegRatio"`
		PayoutRatio             Num `json:"payoutRatio"`
		Beta                    Num `json:"beta"`
		TrailingEps             Num `json:"trailingEps"`
		BookValue               Num `json:"bookValue"`
		SharesOutstanding       Num `json:"sharesOutstanding"`
		FloatShares             Num `json:"floatShares"`
		HeldPercentInsiders     Num `json:"heldPercentInsiders"`
		HeldPercentInstitutions Num `json:"heldPercentInstitutions"`
		ShortRatio              Num `json:"shortRatio"`
		ShortPercentOfFloat     Num `json:"shortPercentOfFloat"`
		EnterpriseValue         Num `json:"enterpriseValue"`
		EnterpriseToRevenue     Num `json:"enterpriseToRevenue"`
		EnterpriseToEbitda      Num `json:"enterpriseToEbitda"`
		EarningsQuarterlyGrowth Num `json:"earningsQuarterlyGrowth"`
	} `json:"defaultKeyStatistics"`
	AssetProfile struct {
		Sector              string `json:"sector"`
		Industry            string `json:"industry"`
		Country             string `json:"country"`
		Website             string `json:"website"`
		FullTimeEmployees   *int64 `json:"fullTimeEmployees"`
		LongBusinessSummary string `json:"longBusinessSummary"`
	} `json:"assetProfile"`
	Price struct {
		ShortName          string `json:"shortName"`
		LongName           string `json:"longName"`
		Currency           string `json:"currency"`
		ExchangeName       string `json:"exchangeName"`
		QuoteType          string `json:"quoteType"`
		RegularMarketPrice Num    `json:"regularMarketPrice"`
		MarketCap          Num    `json:"marketCap"`
	} `json:"price"`
	SummaryProfile struct {
		Sector              string `json:"sector"`
		Industry            string `json:"industry"`
		LongBusinessSummary string `json:"longBusinessSummary"`
	} `json:"summaryProfile"`
}

// ChartMeta is the current-market header of the chart endpoint.
type ChartMeta struct {
	Symbol               string   `json:"symbol"`
	Currency             string   `json:"currency"`
	ExchangeName         string   `json:"exchangeName"`
	FullExchangeName     string   `json:"fullExchangeName"`
	InstrumentType       string   `json:"instrumentType"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	ChartPreviousClose   *float64 `json:"chartPreviousClose"`
	PreviousClose        *float64 `json:"previousClose"`
	RegularMarketDayHigh *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow  *float64 `json:"regularMarketDayLow"`
	RegularMarketVolume  *int64   `json:"regularMarketVolume"`
}

// Candle is one bar of the historical series. Nil fields mean the provider
// had no data for that slot (halted days, partial sessions).
type Candle struct {
	Time     time.Time
	Open     *float64
	High     *float64
	Low      *float64
	Close    *float64
	AdjClose *float64
	Volume   *int64
}

// Chart is the decoded chart endpoint response.
type Chart struct {
	Meta    ChartMeta
	Candles []Candle
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("provider: %s: %s", e.Code, e.Description)
}

// Summary fetches the quoteSummary modules for symbol.
func (c *Client) Summary(ctx context.Context, symbol string) (*Summary, error) {
	var resp struct {
		QuoteSummary struct {
			Result []*Summary `json:"result"`
			Error  *apiError  `json:"error"`
		} `json:"quoteSummary"`
	}
	q := url.Values{"modules": {summaryModules}}
	if err := c.getJSON(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), q, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, resp.QuoteSummary.Error
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("provider: no summary for %s", symbol)
	}
	return resp.QuoteSummary.Result[0], nil
}

// Chart fetches the price series for symbol between from and to at the
// given interval (1d, 1wk, 1mo ...), along with current market meta.
func (c *Client) Chart(ctx context.Context, symbol string, from, to time.Time, interval string) (*Chart, error) {
	var resp struct {
		Chart struct {
			Result []struct {
				Meta       ChartMeta `json:"meta"`
				Timestamp  []int64   `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Open   []*float64 `json:"open"`
						High   []*float64 `json:"high"`
						Low    []*float64 `json:"low"`
						Close  []*float64 `json:"close"`
						Volume []*int64   `json:"volume"`
					} `json:"quote"`
					AdjClose []struct {
						AdjClose []*float64 `json:"adjclose"`
					} `json:"adjclose"`
				} `json:"indicators"`
			} `json:"result"`
			Error *apiError `json:"error"`
		} `json:"chart"`
	}
	q := url.Values{
		"period1":  {strconv.FormatInt(from.Unix(), 10)},
		"period2":  {strconv.FormatInt(to.Unix(), 10)},
		"interval": {interval},
		"events":   {"div,splits"},
	}
	if err := c.getJSON(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), q, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, resp.Chart.Error
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("provider: no chart for %s", symbol)
	}

	res := resp.Chart.Result[0]
	out := &Chart{Meta: res.Meta}
	if len(res.Indicators.Quote) == 0 {
		return out, nil
	}
	bars := res.Indicators.Quote[0]
	var adj []*float64
	if len(res.Indicators.AdjClose) > 0 {
		adj = res.Indicators.AdjClose[0].AdjClose
	}
	for i, ts := range res.Timestamp {
		candle := Candle{Time: time.Unix(ts, 0).UTC()}
		if i < len(bars.Open) {
			candle.Open = bars.Open[i]
		}
		if i < len(bars.High) {
			candle.High = bars.High[i]
		}
		if i < len(bars.Low) {
			candle.Low = bars.Low[i]
		}
		if i < len(bars.Close) {
			candle.Close = bars.Close[i]
		}
		if i < len(bars.Volume) {
			candle.Volume = bars.Volume[i]
		}
		if i < len(adj) {
			candle.AdjClose = adj[i]
		}
		out.Candles = append(out.Candles, candle)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	// The provider rejects requests without a browser-ish user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stockboard/1.0)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The provider reports symbol errors inside the JSON envelope even
		// on non-200 statuses; try to surface that before the generic error.
		var probe json.RawMessage
		if json.NewDecoder(resp.Body).Decode(&probe) == nil {
			if err := json.Unmarshal(probe, dst); err == nil {
				return nil
			}
		}
		return fmt.Errorf("provider: unexpected status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
