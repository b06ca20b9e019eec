package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"StockLens/internal/domain/failure"
	"StockLens/internal/domain/models"

	"github.com/goccy/go-json"
)

const analysisSchema = `{
  "technicalAnalysis": {
    "trend": string,
    "indicators": {
      "rsi": number,
      "macd": { "value": number, "signal": number, "histogram": number }
    }
  },
  "sentiment": {
    "score": number,
    "signals": string[]
  },
  "risks": [{ "type": string, "description": string, "severity": number }],
  "opportunities": [{ "type": string, "description": string, "potential": number }],
  "priceTargets": {
    "low": number,
    "medium": number,
    "high": number
  }
}`

// BuildPrompt renders the analysis instruction for q. Equal quotes always
// produce equal prompts.
func BuildPrompt(q models.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following stock data for %s:\n", q.Symbol)
	fmt.Fprintf(&b, "Current Price: %s\n", formatNumber(q.Price))
	fmt.Fprintf(&b, "Change: %s\n", formatNumber(q.Change))
	fmt.Fprintf(&b, "Change Percent: %s%%\n", formatNumber(q.ChangePercent))
	fmt.Fprintf(&b, "Volume: %d\n\n", q.Volume)
	b.WriteString("Provide a comprehensive analysis including:\n")
	b.WriteString("1. Technical Analysis (trend, support/resistance, indicators)\n")
	b.WriteString("2. Market Sentiment\n")
	b.WriteString("3. Risks and Opportunities\n")
	b.WriteString("4. Price Targets\n\n")
	b.WriteString("Format the response in JSON with the following structure:\n")
	b.WriteString(analysisSchema)
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// analysisPayload mirrors the model's JSON. Pointer fields tell an absent
// section or leaf apart from a zero one.
type analysisPayload struct {
	TechnicalAnalysis *technicalPayload    `json:"technicalAnalysis"`
	Sentiment         *sentimentPayload    `json:"sentiment"`
	Risks             []models.Risk        `json:"risks"`
	Opportunities     []models.Opportunity `json:"opportunities"`
	PriceTargets      *targetsPayload      `json:"priceTargets"`
}

type technicalPayload struct {
	Trend      string `json:"trend"`
	Indicators *struct {
		RSI  *float64 `json:"rsi"`
		MACD *struct {
			Value     *float64 `json:"value"`
			Signal    *float64 `json:"signal"`
			Histogram *float64 `json:"histogram"`
		} `json:"macd"`
	} `json:"indicators"`
}

type sentimentPayload struct {
	Score   *float64 `json:"score"`
	Signals []string `json:"signals"`
}

type targetsPayload struct {
	Low    *float64 `json:"low"`
	Medium *float64 `json:"medium"`
	High   *float64 `json:"high"`
}

// missingFields lists the absent required paths of p.
func (p *analysisPayload) missingFields() []string {
	var missing []string
	need := func(ok bool, path string) {
		if !ok {
			missing = append(missing, path)
		}
	}

	ta := p.TechnicalAnalysis
	need(ta != nil, "technicalAnalysis")
	if ta != nil {
		need(strings.TrimSpace(ta.Trend) != "", "technicalAnalysis.trend")
		need(ta.Indicators != nil, "technicalAnalysis.indicators")
		if ind := ta.Indicators; ind != nil {
			need(ind.RSI != nil, "technicalAnalysis.indicators.rsi")
			need(ind.MACD != nil, "technicalAnalysis.indicators.macd")
			if m := ind.MACD; m != nil {
				need(m.Value != nil, "technicalAnalysis.indicators.macd.value")
				need(m.Signal != nil, "technicalAnalysis.indicators.macd.signal")
				need(m.Histogram != nil, "technicalAnalysis.indicators.macd.histogram")
			}
		}
	}

	need(p.Sentiment != nil, "sentiment")
	if p.Sentiment != nil {
		need(p.Sentiment.Score != nil, "sentiment.score")
	}

	need(p.PriceTargets != nil, "priceTargets")
	if pt := p.PriceTargets; pt != nil {
		need(pt.Low != nil, "priceTargets.low")
		need(pt.Medium != nil, "priceTargets.medium")
		need(pt.High != nil, "priceTargets.high")
	}
	return missing
}

// ParseAnalysis decodes the model output and assembles the full analysis for
// q. Any decoding error or missing field yields MalformedAnalysis and a
// zero MarketAnalysis.
func ParseAnalysis(q models.Quote, content string) (models.MarketAnalysis, error) {
	var p analysisPayload
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return models.MarketAnalysis{}, failure.Wrap(failure.MalformedAnalysis, err)
	}
	if missing := p.missingFields(); len(missing) > 0 {
		return models.MarketAnalysis{}, failure.Wrap(failure.MalformedAnalysis,
			fmt.Errorf("missing fields: %s", strings.Join(missing, ", ")))
	}

	signals := p.Sentiment.Signals
	if signals == nil {
		signals = []string{}
	}
	if p.Risks == nil {
		p.Risks = []models.Risk{}
	}
	if p.Opportunities == nil {
		p.Opportunities = []models.Opportunity{}
	}

	ind := p.TechnicalAnalysis.Indicators
	return models.MarketAnalysis{
		Symbol:        q.Symbol,
		CurrentPrice:  q.Price,
		ChangePercent: q.ChangePercent,
		Volume:        q.Volume,
		LastUpdated:   q.LastUpdated,
		TechnicalAnalysis: models.TechnicalAnalysis{
			Trend: p.TechnicalAnalysis.Trend,
			Indicators: models.Indicators{
				RSI: *ind.RSI,
				MACD: models.MACD{
					Value:     *ind.MACD.Value,
					Signal:    *ind.MACD.Signal,
					Histogram: *ind.MACD.Histogram,
				},
			},
		},
		Sentiment:     models.Sentiment{Score: *p.Sentiment.Score, Signals: signals},
		Risks:         p.Risks,
		Opportunities: p.Opportunities,
		PriceTargets: models.PriceTargets{
			Low:    *p.PriceTargets.Low,
			Medium: *p.PriceTargets.Medium,
			High:   *p.PriceTargets.High,
		},
	}, nil
}

// RenderSummary formats the human-readable digest of a.
func RenderSummary(a models.MarketAnalysis) string {
	sign := ""
	if a.ChangePercent > 0 {
		sign = "+"
	}
	polarity := "שלילי"
	if a.Sentiment.Score > 0 {
		polarity = "חיובי"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ניתוח מניית %s:\n\n", a.Symbol)
	fmt.Fprintf(&b, "מחיר נוכחי: ₪%.2f\n", a.CurrentPrice)
	fmt.Fprintf(&b, "שינוי יומי: %s%.2f%%\n\n", sign, a.ChangePercent)
	fmt.Fprintf(&b, "מגמה טכנית: %s\n", a.TechnicalAnalysis.Trend)
	fmt.Fprintf(&b, "סנטימנט שוק: %s\n\n", polarity)
	b.WriteString("יעדי מחיר:\n")
	fmt.Fprintf(&b, "• נמוך: ₪%.2f\n", a.PriceTargets.Low)
	fmt.Fprintf(&b, "• בינוני: ₪%.2f\n", a.PriceTargets.Medium)
	fmt.Fprintf(&b, "• גבוה: ₪%.2f", a.PriceTargets.High)
	return b.String()
}

// SerializeAnalysis returns the JSON context handed back to callers.
func SerializeAnalysis(a models.MarketAnalysis) (string, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
