package telemetry

import (
	"maps"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

const grpcScheme = "grpc://"

// Config describes where spans go. An empty EndpointURL disables export even when Enabled is set.
// EndpointURL is either grpc://host:port for OTLP/gRPC or an http(s) URL for OTLP/HTTP.
type Config struct {
	ServiceName string
	Environment string
	EndpointURL string
	Enabled     bool
	SampleRatio float64
	Insecure    bool
	// Attributes are added to the resource after service.name and deployment.environment.
	Attributes map[string]string
}

func (c Config) exporting() bool {
	return c.Enabled && c.EndpointURL != ""
}

// grpcTarget returns the host:port of a grpc:// endpoint.
func (c Config) grpcTarget() (string, bool) {
	if !strings.HasPrefix(c.EndpointURL, grpcScheme) {
		return "", false
	}
	return strings.TrimPrefix(c.EndpointURL, grpcScheme), true
}

func (c Config) resourceAttributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("service.name", c.ServiceName)}
	if c.Environment != "" {
		attrs = append(attrs, attribute.String("deployment.environment", c.Environment))
	}
	for _, k := range slices.Sorted(maps.Keys(c.Attributes)) {
		attrs = append(attrs, attribute.String(k, c.Attributes[k]))
	}
	return attrs
}
