package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"academy-ledger/internal/config"
	"academy-ledger/internal/constants"
	"academy-ledger/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

// RateClient reads USD exchange rates from an open.er-api.com compatible
// endpoint. The upstream publishes once a day, so a response is reused
// until the next update time it announces.
type RateClient struct {
	url    string
	client *fasthttp.Client
	logger zerolog.Logger

	cacheMu sync.RWMutex
	cached  *LatestRatesResponse
}

type LatestRatesResponse struct {
	Result             string                     `json:"result"`
	ErrorType          string                     `json:"error-type"`
	BaseCode           string                     `json:"base_code"`
	TimeLastUpdateUnix int64                      `json:"time_last_update_unix"`
	TimeNextUpdateUnix int64                      `json:"time_next_update_unix"`
	Rates              map[string]decimal.Decimal `json:"rates"`
}

func (r *LatestRatesResponse) fresh(now time.Time) bool {
	return r != nil && r.TimeNextUpdateUnix > now.Unix()
}

func NewRateClient(cfg *config.Config, logger zerolog.Logger) *RateClient {
	timeout := cfg.ExchangeRateTimeout
	if timeout <= 0 {
		timeout = constants.ExternalAPITimeout
	}
	return &RateClient{
		url:    cfg.ExchangeRateURL,
		logger: logger,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// LatestRate returns how many units of currency one USD buys.
func (c *RateClient) LatestRate(ctx context.Context, currency string) (*domain.ExchangeRate, error) {
	latest, err := c.latest(ctx)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(currency)
	rate, ok := latest.Rates[code]
	if !ok {
		return nil, domain.NewNotFound("exchange rate", code)
	}
	if rate.Sign() <= 0 {
		return nil, &domain.InvalidRateError{Rate: rate.String()}
	}

	return &domain.ExchangeRate{
		Base:      latest.BaseCode,
		Currency:  code,
		Rate:      rate,
		Source:    constants.RateSourceAPI,
		UpdatedAt: time.Unix(latest.TimeLastUpdateUnix, 0).UTC(),
	}, nil
}

func (c *RateClient) latest(ctx context.Context) (*LatestRatesResponse, error) {
	c.cacheMu.RLock()
	cached := c.cached
	c.cacheMu.RUnlock()
	if cached.fresh(time.Now()) {
		return cached, nil
	}

	start := time.Now()
	resp, err := doRequest[LatestRatesResponse](ctx, c, c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	if resp.Result != "success" {
		return nil, fmt.Errorf("exchange rate API error: %s", resp.ErrorType)
	}

	c.cacheMu.Lock()
	c.cached = resp
	c.cacheMu.Unlock()

	c.logger.Debug().
		Str("base", resp.BaseCode).
		Int("currencies", len(resp.Rates)).
		Dur("duration", time.Since(start)).
		Msg("exchange rates refreshed")
	return resp, nil
}

func doRequest[T any](ctx context.Context, client *RateClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
