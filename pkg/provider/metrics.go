package provider

import (
	"time"

	"github.com/rhuss/autobot/pkg/observability"
)

// Observe records the outcome of one backend call.
func Observe(name, model string, start time.Time, resp *Response, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.ProviderRequestsTotal.WithLabelValues(name, model, status).Inc()
	observability.ProviderLatency.WithLabelValues(name, model).Observe(time.Since(start).Seconds())

	if resp != nil {
		observability.ProviderTokensTotal.WithLabelValues(name, model, "input").Add(float64(resp.Usage.InputTokens))
		observability.ProviderTokensTotal.WithLabelValues(name, model, "output").Add(float64(resp.Usage.OutputTokens))
	}
}
