package httpclient

import (
	"ticketing-service/config"

	circuit "github.com/rubyist/circuitbreaker"
)

// InitCircuitBreaker picks the breaker strategy for outbound HTTP calls.
func InitCircuitBreaker(cfg *config.HttpClientConfig, breakerType string) *circuit.Breaker {
	switch breakerType {
	case "threshold":
		return circuit.NewThresholdBreaker(cfg.ErrorThreshold)
	case "consecutive":
		return circuit.NewConsecutiveBreaker(cfg.ConsecutiveFailures)
	default:
		return circuit.NewBreaker()
	}
}

// InitHttpClient wraps the breaker in an HTTP client with a bounded request
// timeout, so no gateway call can hang a request handler.
func InitHttpClient(cfg *config.HttpClientConfig, cb *circuit.Breaker) *circuit.HTTPClient {
	client := circuit.NewHTTPClient(cfg.Timeout, cfg.ConsecutiveFailures, nil)
	client.BreakerLookup = func(c *circuit.HTTPClient, _ interface{}) *circuit.Breaker {
		return cb
	}
	return client
}
