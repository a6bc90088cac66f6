package vietcombank

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Client fetches USD->VND exchange rates from the Vietcombank public XML
// feed. The feed is best-effort: callers always keep a stored fallback rate
// and must not block payroll on a feed failure.
type Client struct {
	url        string
	httpClient *http.Client

	mu         sync.RWMutex
	cachedRate decimal.Decimal
	cachedAt   time.Time
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type exrateList struct {
	XMLName xml.Name `xml:"ExrateList"`
	Exrates []exrate `xml:"Exrate"`
}

type exrate struct {
	CurrencyCode string `xml:"CurrencyCode,attr"`
	Transfer     string `xml:"Transfer,attr"`
}

// FetchUSDRate returns the current USD buy-transfer rate in VND.
func (c *Client) FetchUSDRate(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build rate feed request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch exchange rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return decimal.Zero, fmt.Errorf("read rate feed response: %w", err)
	}

	return ParseUSDRate(body)
}

// ParseUSDRate extracts the USD transfer rate from the feed XML payload.
func ParseUSDRate(payload []byte) (decimal.Decimal, error) {
	var list exrateList
	if err := xml.Unmarshal(payload, &list); err != nil {
		return decimal.Zero, fmt.Errorf("parse rate feed XML: %w", err)
	}

	for _, item := range list.Exrates {
		if item.CurrencyCode != "USD" {
			continue
		}
		// The feed formats numbers with thousands separators ("26,120.00").
		raw := strings.ReplaceAll(item.Transfer, ",", "")
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse USD transfer rate %q: %w", item.Transfer, err)
		}
		if !rate.IsPositive() {
			return decimal.Zero, fmt.Errorf("USD transfer rate %s is not positive", rate)
		}
		return rate, nil
	}

	return decimal.Zero, fmt.Errorf("USD rate not found in feed response")
}

// Refresh fetches the current rate and caches it.
func (c *Client) Refresh(ctx context.Context) error {
	rate, err := c.FetchUSDRate(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cachedRate = rate
	c.cachedAt = time.Now()
	c.mu.Unlock()
	return nil
}

// CachedRate returns the last successfully fetched rate, if any.
func (c *Client) CachedRate() (decimal.Decimal, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cachedRate, c.cachedAt, c.cachedRate.IsPositive()
}
