package models

// MACD holds the moving average convergence/divergence triple.
type MACD struct {
	Value     float64 `json:"value"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

type Indicators struct {
	RSI  float64 `json:"rsi"`
	MACD MACD    `json:"macd"`
}

type TechnicalAnalysis struct {
	Trend      string     `json:"trend"`
	Indicators Indicators `json:"indicators"`
}

type Sentiment struct {
	Score   float64  `json:"score"` // signed, >0 positive
	Signals []string `json:"signals"`
}

type Risk struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Severity    float64 `json:"severity"` // 0-10
}

type Opportunity struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Potential   float64 `json:"potential"` // 0-10
}

type PriceTargets struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// MarketAnalysis is the canonical pipeline output. It is only ever built in
// full from a successful run.
type MarketAnalysis struct {
	Symbol            string            `json:"symbol"`
	CurrentPrice      float64           `json:"currentPrice"`
	ChangePercent     float64           `json:"changePercent"`
	Volume            int64             `json:"volume"`
	LastUpdated       string            `json:"lastUpdated"`
	TechnicalAnalysis TechnicalAnalysis `json:"technicalAnalysis"`
	Sentiment         Sentiment         `json:"sentiment"`
	Risks             []Risk            `json:"risks"`
	Opportunities     []Opportunity     `json:"opportunities"`
	PriceTargets      PriceTargets      `json:"priceTargets"`
}

// AnalysisResult is what the orchestrator hands back to its caller.
type AnalysisResult struct {
	Summary           string         `json:"summary"`
	Analysis          MarketAnalysis `json:"analysis"`
	SerializedContext string         `json:"context"`
}

// AnalysisCompleted is the event emitted after a successful run.
type AnalysisCompleted struct {
	Symbol      string         `json:"symbol"`
	ModuleID    string         `json:"moduleId"`
	Summary     string         `json:"summary"`
	Analysis    MarketAnalysis `json:"analysis"`
	CompletedAt int64          `json:"completedAt"` // unix ms
}
