package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lfmelo/stockboard/internal/quote"
)

// QuoteHandler proxies the market-data provider and reshapes its payloads
// into what the dashboard renders. These are the only outbound HTTP calls
// in the service.
type QuoteHandler struct {
	Client *quote.Client
}

func NewQuoteHandler(client *quote.Client) *QuoteHandler {
	return &QuoteHandler{Client: client}
}

// firstNum returns the first non-nil value, mirroring the fallback chains
// the dashboard relies on (summary detail, then live quote, then price).
func firstNum(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func firstStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// marketChange derives absolute and percentage change from the chart meta.
func marketChange(meta quote.ChartMeta) (change, changePct *float64) {
	prev := firstNum(meta.PreviousClose, meta.ChartPreviousClose)
	if meta.RegularMarketPrice == nil || prev == nil || *prev == 0 {
		return nil, nil
	}
	d := *meta.RegularMarketPrice - *prev
	p := d / *prev * 100
	return &d, &p
}

func int64ToFloat(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// Company returns the full company payload: profile, pricing, volume,
// fundamentals, financial health, balance, growth and statistics, plus a
// compact summary block for the dashboard cards.
func (h *QuoteHandler) Company(c echo.Context) error {
	symbol := c.Param("symbol")
	ctx := c.Request().Context()

	sum, err := h.Client.Summary(ctx, symbol)
	if err != nil {
		log.Printf("quote: summary %s failed: %v", symbol, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Erro ao buscar dados da empresa", "symbol": symbol})
	}
	chart, err := h.Client.Chart(ctx, symbol, time.Now().AddDate(0, 0, -5), time.Now(), "1d")
	if err != nil {
		log.Printf("quote: chart %s failed: %v", symbol, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Erro ao buscar dados da empresa", "symbol": symbol})
	}

	meta := chart.Meta
	change, changePct := marketChange(meta)

	detail := sum.SummaryDetail
	fin := sum.FinancialData
	stats := sum.KeyStats
	profile := sum.AssetProfile
	price := sum.Price

	currentPrice := firstNum(meta.RegularMarketPrice, detail.PreviousClose.Val(), price.RegularMarketPrice.Val())
	volume := firstNum(detail.Volume.Val(), int64ToFloat(meta.RegularMarketVolume))
	avgVolume := detail.AverageVolume.Val()
	marketCap := firstNum(detail.MarketCap.Val(), price.MarketCap.Val())
	dividendYield := firstNum(detail.DividendYield.Val(), detail.TrailingAnnualDividendYield.Val())
	beta := firstNum(stats.Beta.Val(), detail.Beta.Val())
	peRatio := firstNum(detail.TrailingPE.Val(), stats.TrailingPE.Val())

	var employees any = "N/A"
	if profile.FullTimeEmployees != nil {
		employees = *profile.FullTimeEmployees
	}

	data := echo.Map{
		"companyInfo": echo.Map{
			"symbol":      symbol,
			"shortName":   orNA(price.ShortName),
			"longName":    orNA(price.LongName),
			"sector":      orNA(firstStr(profile.Sector, sum.SummaryProfile.Sector)),
			"industry":    orNA(firstStr(profile.Industry, sum.SummaryProfile.Industry)),
			"country":     orNA(profile.Country),
			"website":     orNA(profile.Website),
			"employees":   employees,
			"description": orNA(firstStr(profile.LongBusinessSummary, sum.SummaryProfile.LongBusinessSummary)),
		},
		"pricing": echo.Map{
			"currentPrice":   currentPrice,
			"previousClose":  firstNum(detail.PreviousClose.Val(), meta.PreviousClose, meta.ChartPreviousClose),
			"open":           detail.Open.Val(),
			"dayLow":         firstNum(detail.DayLow.Val(), meta.RegularMarketDayLow),
			"dayHigh":        firstNum(detail.DayHigh.Val(), meta.RegularMarketDayHigh),
			"fiftyTwoWkLow":  detail.FiftyTwoWeekLow.Val(),
			"fiftyTwoWkHigh": detail.FiftyTwoWeekHigh.Val(),
			"change":         change,
			"changePercent":  changePct,
		},
		"volume": echo.Map{
			"volume":             volume,
			"avgVolume":          avgVolume,
			"avgVolume10days":    detail.AverageVolume10Days.Val(),
			"volumeFormatted":    quote.FormatLargeNumber(volume),
			"avgVolumeFormatted": quote.FormatLargeNumber(avgVolume),
		},
		"fundamentals": echo.Map{
			"marketCap":              marketCap,
			"marketCapFormatted":     quote.FormatLargeNumber(marketCap),
			"peRatio":                peRatio,
			"forwardPE":              firstNum(detail.ForwardPE.Val(), stats.ForwardPE.Val()),
			"pbRatio":                stats.PriceToBook.Val(),
			"psRatio":                stats.PriceToSales.Val(),
			"pegRatio":               stats.PegRatio.Val(),
			"dividendYield":          dividendYield,
			"dividendYieldFormatted": quote.FormatPercentage(dividendYield),
			"dividendRate":           detail.DividendRate.Val(),
			"payoutRatio":            stats.PayoutRatio.Val(),
			"beta":                   beta,
			"eps":                    stats.TrailingEps.Val(),
			"bookValue":              stats.BookValue.Val(),
		},
		"financialHealth": echo.Map{
			"roe":                       fin.ReturnOnEquity.Val(),
			"roeFormatted":              quote.FormatPercentage(fin.ReturnOnEquity.Val()),
			"roa":                       fin.ReturnOnAssets.Val(),
			"roaFormatted":              quote.FormatPercentage(fin.ReturnOnAssets.Val()),
			"profitMargins":             fin.ProfitMargins.Val(),
			"profitMarginsFormatted":    quote.FormatPercentage(fin.ProfitMargins.Val()),
			"operatingMargins":          fin.OperatingMargins.Val(),
			"operatingMarginsFormatted": quote.FormatPercentage(fin.OperatingMargins.Val()),
			"grossMargins":              fin.GrossMargins.Val(),
			"grossMarginsFormatted":     quote.FormatPercentage(fin.GrossMargins.Val()),
			"ebitdaMargins":             fin.EbitdaMargins.Val(),
			"ebitdaMarginsFormatted":    quote.FormatPercentage(fin.EbitdaMargins.Val()),
		},
		"balance": echo.Map{
			"totalCash":             fin.TotalCash.Val(),
			"totalCashFormatted":    quote.FormatLargeNumber(fin.TotalCash.Val()),
			"totalDebt":             fin.TotalDebt.Val(),
			"totalDebtFormatted":    quote.FormatLargeNumber(fin.TotalDebt.Val()),
			"totalRevenue":          fin.TotalRevenue.Val(),
			"totalRevenueFormatted": quote.FormatLargeNumber(fin.TotalRevenue.Val()),
			"debtToEquity":          fin.DebtToEquity.Val(),
			"currentRatio":          fin.CurrentRatio.Val(),
			"quickRatio":            fin.QuickRatio.Val(),
			"totalCashPerShare":     fin.TotalCashPerShare.Val(),
			"revenuePerShare":       fin.RevenuePerShare.Val(),
		},
		"growth": echo.Map{
			"revenueGrowth":                    fin.RevenueGrowth.Val(),
			"revenueGrowthFormatted":           quote.FormatPercentage(fin.RevenueGrowth.Val()),
			"earningsGrowth":                   fin.EarningsGrowth.Val(),
			"earningsGrowthFormatted":          quote.FormatPercentage(fin.EarningsGrowth.Val()),
			"earningsQuarterlyGrowth":          stats.EarningsQuarterlyGrowth.Val(),
			"earningsQuarterlyGrowthFormatted": quote.FormatPercentage(stats.EarningsQuarterlyGrowth.Val()),
		},
		"statistics": echo.Map{
			"sharesOutstanding":          stats.SharesOutstanding.Val(),
			"sharesOutstandingFormatted": quote.FormatLargeNumber(stats.SharesOutstanding.Val()),
			"floatShares":                stats.FloatShares.Val(),
			"floatSharesFormatted":       quote.FormatLargeNumber(stats.FloatShares.Val()),
			"heldPercentInsiders":        stats.HeldPercentInsiders.Val(),
			"heldPercentInstitutions":    stats.HeldPercentInstitutions.Val(),
			"shortRatio":                 stats.ShortRatio.Val(),
			"shortPercentOfFloat":        stats.ShortPercentOfFloat.Val(),
			"enterpriseValue":            stats.EnterpriseValue.Val(),
			"enterpriseValueFormatted":   quote.FormatLargeNumber(stats.EnterpriseValue.Val()),
			"priceToSales":               stats.PriceToSales.Val(),
			"enterpriseToRevenue":        stats.EnterpriseToRevenue.Val(),
			"enterpriseToEbitda":         stats.EnterpriseToEbitda.Val(),
		},
		"summary": echo.Map{
			"currentPrice":       currentPrice,
			"priceChange":        change,
			"priceChangePercent": changePct,
			"volume":             volume,
			"marketCap":          marketCap,
			"peRatio":            peRatio,
			"dividendYield":      dividendYield,
			"beta":               beta,
		},
		"metadata": echo.Map{
			"lastUpdated": time.Now().UTC().Format(time.RFC3339),
			"currency":    orNA(firstStr(price.Currency, meta.Currency)),
			"exchange":    firstStr(price.ExchangeName, meta.FullExchangeName, "Unknown"),
			"quoteType":   firstStr(price.QuoteType, meta.InstrumentType, "EQUITY"),
		},
	}
	return c.JSON(http.StatusOK, data)
}

// History returns the historical OHLCV series for the selected period and
// interval, with prices pre-formatted for the chart tooltips.
func (h *QuoteHandler) History(c echo.Context) error {
	symbol := c.Param("symbol")
	period := c.QueryParam("period")
	if period == "" {
		period = "1y"
	}
	interval := c.QueryParam("interval")
	if interval == "" {
		interval = "1d"
	}

	now := time.Now()
	chart, err := h.Client.Chart(c.Request().Context(), symbol, quote.PeriodStart(period, now), now, interval)
	if err != nil {
		log.Printf("quote: history %s failed: %v", symbol, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Erro ao buscar dados históricos", "symbol": symbol})
	}

	data := make([]echo.Map, 0, len(chart.Candles))
	for _, bar := range chart.Candles {
		var vol int64
		if bar.Volume != nil {
			vol = *bar.Volume
		}
		data = append(data, echo.Map{
			"date":        bar.Time.Format("2006-01-02"),
			"month":       quote.MonthPT(bar.Time.Month()),
			"year":        bar.Time.Year(),
			"price":       quote.FormatPrice(bar.Close),
			"priceRaw":    bar.Close,
			"open":        quote.FormatPrice(bar.Open),
			"openRaw":     bar.Open,
			"high":        quote.FormatPrice(bar.High),
			"highRaw":     bar.High,
			"low":         quote.FormatPrice(bar.Low),
			"lowRaw":      bar.Low,
			"volume":      vol,
			"adjClose":    quote.FormatPrice(bar.AdjClose),
			"adjCloseRaw": bar.AdjClose,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"symbol":      symbol,
		"period":      period,
		"interval":    interval,
		"data":        data,
		"count":       len(data),
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	})
}

// Quote returns the fast current-price view used by tickers and watchlists.
func (h *QuoteHandler) Quote(c echo.Context) error {
	symbol := c.Param("symbol")

	now := time.Now()
	chart, err := h.Client.Chart(c.Request().Context(), symbol, now.AddDate(0, 0, -5), now, "1d")
	if err != nil {
		log.Printf("quote: quote %s failed: %v", symbol, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Erro ao buscar cotação", "symbol": symbol})
	}

	meta := chart.Meta
	change, changePct := marketChange(meta)
	return c.JSON(http.StatusOK, echo.Map{
		"symbol":        symbol,
		"price":         meta.RegularMarketPrice,
		"change":        change,
		"changePercent": changePct,
		"volume":        meta.RegularMarketVolume,
		"dayHigh":       meta.RegularMarketDayHigh,
		"dayLow":        meta.RegularMarketDayLow,
		"previousClose": firstNum(meta.PreviousClose, meta.ChartPreviousClose),
		"lastUpdated":   time.Now().UTC().Format(time.RFC3339),
	})
}
