package telemetry

import (
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/bacalhau-project/lambdapushdown/pkg/version"
)

const tracerName = "github.com/bacalhau-project/lambdapushdown"

// SetupFromEnvs installs an OTLP trace exporter when the standard OTEL
// endpoint variables are set. Without them spans go to the no-op provider.
func SetupFromEnvs() {
	newTraceProvider()

	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		log.Err(err).Msg("Error occurred while handling spans")
	}))
}

// Cleanup flushes the remaining traces in memory to the exporter and releases
// any telemetry resources.
func Cleanup() error {
	return cleanupTraceProvider()
}

// newResource returns a resource describing this application.
func newResource() *resource.Resource {
	res, err := resource.Merge(
		resource.Environment(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("pushdown"),
			semconv.ServiceVersionKey.String(version.Get().GitVersion),
		),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create otel resource. Falling back to default resource config")
		res = resource.Default()
	}
	return res
}
