package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfmelo/stockboard/internal/quote"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {
        "symbol": "PETR4.SA",
        "currency": "BRL",
        "regularMarketPrice": 38.5,
        "chartPreviousClose": 38.0,
        "regularMarketVolume": 1200000
      },
      "timestamp": [1704067200],
      "indicators": {
        "quote": [{
          "open": [38.0], "high": [39.0], "low": [37.5],
          "close": [38.4], "volume": [1000000]
        }],
        "adjclose": [{"adjclose": [38.1]}]
      }
    }],
    "error": null
  }
}`

func quoteUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartPayload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestQuoteHistory(t *testing.T) {
	t.Parallel()

	h := NewQuoteHandler(quote.NewClient(quoteUpstream(t).URL))
	c, rec := jsonContext(http.MethodGet, "/yahoo/PETR4.SA/history?period=1mo&interval=1d", "")
	c.SetParamNames("symbol")
	c.SetParamValues("PETR4.SA")

	require.NoError(t, h.History(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "PETR4.SA", body["symbol"])
	assert.Equal(t, "1mo", body["period"])
	assert.Equal(t, float64(1), body["count"])

	data := body["data"].([]any)
	require.Len(t, data, 1)
	bar := data[0].(map[string]any)
	assert.Equal(t, "2024-01-01", bar["date"])
	assert.Equal(t, "Jan", bar["month"])
	assert.Equal(t, "38.40", bar["price"])
	assert.Equal(t, 38.4, bar["priceRaw"])
	assert.Equal(t, float64(1000000), bar["volume"])
}

func TestQuoteFast(t *testing.T) {
	t.Parallel()

	h := NewQuoteHandler(quote.NewClient(quoteUpstream(t).URL))
	c, rec := jsonContext(http.MethodGet, "/yahoo/PETR4.SA/quote", "")
	c.SetParamNames("symbol")
	c.SetParamValues("PETR4.SA")

	require.NoError(t, h.Quote(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, 38.5, body["price"])
	assert.Equal(t, 38.0, body["previousClose"])
	assert.InDelta(t, 0.5, body["change"].(float64), 1e-9)
	assert.InDelta(t, 0.5/38.0*100, body["changePercent"].(float64), 1e-9)
}

func TestQuote_UpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	h := NewQuoteHandler(quote.NewClient(srv.URL))
	c, rec := jsonContext(http.MethodGet, "/yahoo/PETR4.SA/quote", "")
	c.SetParamNames("symbol")
	c.SetParamValues("PETR4.SA")

	require.NoError(t, h.Quote(c))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "PETR4.SA")
}
