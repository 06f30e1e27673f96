// posthog_client.go provides a wrapper around the posthog.Client to make it easier to use and handle when its not initialized.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper wraps the posthog client so callers never have to nil-check it.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient creates the wrapper; with an empty API key it stays uninitialized
// and all capture calls become no-ops.
func InitializePosthogClient(apiKey, host string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &PosthogClientWrapper{}
	}
	if host == "" {
		host = "https://eu.i.posthog.com"
	}
	wrapper := PosthogClientWrapper{}
	wrapper.posthogClient, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: host})
	wrapper.logger = logger
	return &wrapper
}

// IsInitialized reports whether a real posthog client is behind the wrapper.
func (p *PosthogClientWrapper) IsInitialized() bool {
	return p != nil && p.posthogClient != nil
}

// Enqueue sends a capture event; it is a no-op when the client is not initialized.
func (p *PosthogClientWrapper) Enqueue(distinctID, event string, properties map[string]any) {
	if !p.IsInitialized() {
		return
	}
	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	if err := p.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: props,
	}); err != nil && p.logger != nil {
		p.logger.Warn("Failed to enqueue posthog event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes and shuts down the underlying client.
func (p *PosthogClientWrapper) Close() {
	if p.IsInitialized() {
		p.posthogClient.Close()
	}
}
