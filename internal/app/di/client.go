// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"stockpool/internal/platform/externalapi/stockapi"
	infrahttp "stockpool/internal/platform/http"
	"stockpool/internal/platform/metrics"
	"stockpool/internal/platform/storage"
)

// NewRESTClient creates the application's single REST client: a timeout-bound
// HTTP client rooted at the configured endpoint that attaches the stored bearer token.
// When reg is non-nil, round trips are recorded as prometheus metrics.
func NewRESTClient(cfg stockapi.Config, store storage.Store, reg prometheus.Registerer) (*infrahttp.RESTClient, error) {
	var wrappers []infrahttp.RoundTripperWrapper
	if reg != nil {
		m, err := metrics.NewClientMetrics(reg)
		if err != nil {
			return nil, err
		}
		wrappers = append(wrappers, m.InstrumentRoundTripper)
	}

	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, wrappers...)
	return infrahttp.NewRESTClient(cfg.Endpoint(), httpClient, infrahttp.BearerToken(store)), nil
}

// NewStockAPI creates a fully configured stock-pool API client.
func NewStockAPI(cfg stockapi.Config, store storage.Store, logger *slog.Logger, reg prometheus.Registerer) (*stockapi.Client, error) {
	rest, err := NewRESTClient(cfg, store, reg)
	if err != nil {
		return nil, err
	}
	return stockapi.NewClient(rest, logger), nil
}
