package vietcombank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="utf-8"?>
<ExrateList>
  <DateTime>8/30/2026 9:00:00 AM</DateTime>
  <Exrate CurrencyCode="EUR" CurrencyName="EURO" Buy="29,468.23" Transfer="29,765.89" Sell="31,031.86"/>
  <Exrate CurrencyCode="USD" CurrencyName="US DOLLAR" Buy="25,880.00" Transfer="25,910.00" Sell="26,290.00"/>
  <Exrate CurrencyCode="JPY" CurrencyName="JAPANESE YEN" Buy="171.95" Transfer="173.69" Sell="181.72"/>
</ExrateList>`

func TestParseUSDRate(t *testing.T) {
	rate, err := ParseUSDRate([]byte(sampleFeed))
	require.NoError(t, err)
	assert.Equal(t, "25910", rate.String())
}

func TestParseUSDRateMissingUSD(t *testing.T) {
	payload := `<ExrateList><Exrate CurrencyCode="EUR" Transfer="29,765.89"/></ExrateList>`
	_, err := ParseUSDRate([]byte(payload))
	assert.ErrorContains(t, err, "USD rate not found")
}

func TestParseUSDRateRejectsNonPositive(t *testing.T) {
	payload := `<ExrateList><Exrate CurrencyCode="USD" Transfer="0"/></ExrateList>`
	_, err := ParseUSDRate([]byte(payload))
	assert.ErrorContains(t, err, "not positive")
}

func TestParseUSDRateMalformedXML(t *testing.T) {
	_, err := ParseUSDRate([]byte("not xml"))
	assert.Error(t, err)
}

func TestFetchUSDRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	rate, err := client.FetchUSDRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "25910", rate.String())
}

func TestFetchUSDRateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.FetchUSDRate(context.Background())
	assert.ErrorContains(t, err, "status 503")
}

func TestRefreshCachesRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	_, _, ok := client.CachedRate()
	assert.False(t, ok)

	require.NoError(t, client.Refresh(context.Background()))

	rate, at, ok := client.CachedRate()
	assert.True(t, ok)
	assert.Equal(t, "25910", rate.String())
	assert.WithinDuration(t, time.Now(), at, time.Minute)
}
