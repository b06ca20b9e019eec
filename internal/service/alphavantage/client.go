package alphavantage

import (
	"context"
	"errors"
	"strings"
	"time"

	"StockLens/internal/domain/failure"
	"StockLens/internal/domain/models"
	drepo "StockLens/internal/domain/repository"
	xhttp "StockLens/pkg/http"
	applogger "StockLens/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://www.alphavantage.co/query"

// Client fetches single-symbol quotes from the Alpha Vantage GLOBAL_QUOTE
// endpoint. It neither caches nor throttles.
type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	doer    xhttp.Doer
	log     *applogger.Logger
	http    *xhttp.Client
}

// Option configures Client.
type Option func(*Client)

// WithBaseURL overrides the query endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the transport.
func WithHTTPClient(d xhttp.Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithTimeout bounds every call. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a quote provider authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("alphavantage: api key is required")
	}
	c := &Client{apiKey: apiKey, baseURL: defaultBaseURL, log: applogger.Nop()}
	for _, opt := range opts {
		opt(c)
	}

	httpOpts := []xhttp.ClientOption{xhttp.WithTimeout(c.timeout)}
	if c.doer != nil {
		httpOpts = append(httpOpts, xhttp.WithDoer(c.doer))
	}
	c.http = xhttp.NewClient(httpOpts...)
	return c, nil
}

var _ drepo.QuoteProvider = (*Client)(nil)

type globalQuoteResponse struct {
	GlobalQuote  map[string]string `json:"Global Quote"`
	ErrorMessage string            `json:"Error Message"`
	Note         string            `json:"Note"`
	Information  string            `json:"Information"`
}

const (
	fieldSymbol        = "01. symbol"
	fieldPrice         = "05. price"
	fieldVolume        = "06. volume"
	fieldTradingDay    = "07. latest trading day"
	fieldChange        = "09. change"
	fieldChangePercent = "10. change percent"
)

// FetchQuote requests one quote and normalizes it.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	symbol = models.NormalizeSymbol(symbol)

	var raw []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"function": {"GLOBAL_QUOTE"},
			"symbol":   {symbol},
			"apikey":   {c.apiKey},
		},
	}, &raw)
	if err != nil {
		fields := []applogger.Field{applogger.String("symbol", symbol), applogger.Error(err)}
		if code, ok := xhttp.StatusCodeOf(err); ok {
			fields = append(fields, applogger.Int("status", code))
		}
		c.log.Warn("alphavantage: request failed", fields...)
		return models.Quote{}, failure.Wrap(failure.TransportFailure, err)
	}

	var resp globalQuoteResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.Quote{}, failure.Wrap(failure.TransportFailure, err)
	}

	switch {
	case resp.ErrorMessage != "":
		return models.Quote{}, failure.New(failure.SymbolNotFound)
	case resp.Note != "" || resp.Information != "":
		c.log.Warn("alphavantage: provider throttled", applogger.String("symbol", symbol))
		return models.Quote{}, failure.Newf(failure.TransportFailure, failure.MsgMarketDataLimit)
	case len(resp.GlobalQuote) == 0:
		return models.Quote{}, failure.New(failure.SymbolNotFound)
	}

	return parseQuote(symbol, resp.GlobalQuote)
}

func parseQuote(requested string, q map[string]string) (models.Quote, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(q[fieldPrice]))
	if err != nil {
		return models.Quote{}, failure.New(failure.SymbolNotFound)
	}
	if !price.IsPositive() {
		return models.Quote{}, failure.Newf(failure.SymbolNotFound, failure.MsgNoUsablePrice)
	}

	volume := parseDecimal(q[fieldVolume])
	if volume.IsNegative() {
		return models.Quote{}, failure.Newf(failure.SymbolNotFound, failure.MsgNoUsableVolume)
	}

	symbol := models.NormalizeSymbol(q[fieldSymbol])
	if symbol == "" {
		symbol = requested
	}

	return models.Quote{
		Symbol:        symbol,
		Price:         price.InexactFloat64(),
		Change:        parseDecimal(q[fieldChange]).InexactFloat64(),
		ChangePercent: parseDecimal(strings.TrimSuffix(strings.TrimSpace(q[fieldChangePercent]), "%")).InexactFloat64(),
		Volume:        volume.IntPart(),
		LastUpdated:   q[fieldTradingDay],
	}, nil
}

// parseDecimal yields zero for absent or unparsable fields.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
