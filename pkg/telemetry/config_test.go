package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestConfig_Exporting(t *testing.T) {
	cases := []struct {
		cfg  Config
		want bool
	}{
		{Config{Enabled: true, EndpointURL: "http://collector:4318"}, true},
		{Config{Enabled: true}, false},
		{Config{EndpointURL: "http://collector:4318"}, false},
	}
	for _, tc := range cases {
		if got := tc.cfg.exporting(); got != tc.want {
			t.Errorf("%+v: expected %v, got %v", tc.cfg, tc.want, got)
		}
	}
}

func TestConfig_GRPCTarget(t *testing.T) {
	if target, ok := (Config{EndpointURL: "grpc://collector:4317"}).grpcTarget(); !ok || target != "collector:4317" {
		t.Errorf("expected collector:4317, got %q %v", target, ok)
	}
	if _, ok := (Config{EndpointURL: "https://collector/v1/traces"}).grpcTarget(); ok {
		t.Error("expected http endpoint to use the HTTP exporter")
	}
}

func TestConfig_ResourceAttributes(t *testing.T) {
	cfg := Config{
		ServiceName: "volunteer-management",
		Environment: "production",
		Attributes:  map[string]string{"team": "web", "region": "ap-south-1"},
	}

	want := []attribute.KeyValue{
		attribute.String("service.name", "volunteer-management"),
		attribute.String("deployment.environment", "production"),
		attribute.String("region", "ap-south-1"),
		attribute.String("team", "web"),
	}
	got := cfg.resourceAttributes()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attribute %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if n := len((Config{ServiceName: "svc"}).resourceAttributes()); n != 1 {
		t.Errorf("expected only service.name without environment, got %d attributes", n)
	}
}

func TestStart_WithoutExporter(t *testing.T) {
	if err := Init(Config{ServiceName: "test"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	_, span := Start(context.Background(), "noop")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("expected a no-op span when export is disabled")
	}
}
