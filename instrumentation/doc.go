// Package instrumentation provides OpenTelemetry (OTEL) instrumentation for the idtoolkit library.
//
// This package enables observability across the library through:
// - Metrics: Counters and histograms for API calls, pagination and throttling
// - Traces: Spans for each request/response round trip
//
// # Quick Start
//
// Enable instrumentation and pass it to the client configuration:
//
//	import "github.com/cloudtrellis/idtoolkit/instrumentation"
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "my-admin-tool",
//		ServiceVersion: "1.0.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
//	client, err := idtoolkit.NewClient(ctx, &idtoolkit.Config{
//		ProjectID:       "my-project",
//		Instrumentation: inst,
//	})
//
// Enabled instances record through the process-global OpenTelemetry
// providers, so the exporter pipeline is chosen by the host: install it with
// otel.SetMeterProvider and otel.SetTracerProvider, before or after
// constructing the instrumentation.
//
// # Available Metrics
//
// Transport layer:
//   - idtoolkit.api.calls.total{method, operation, status} - API calls issued
//   - idtoolkit.api.call.duration{operation} - Call duration in milliseconds
//   - idtoolkit.api.errors.total{operation, error_type} - Failed calls
//   - idtoolkit.ratelimit.wait.duration{operation} - Outbound throttle wait time
//
// Client layer:
//   - idtoolkit.list.pages.total{collection} - Pages fetched by iterators
//   - idtoolkit.list.items.total{collection} - Items yielded by iterators
//
// # Spans
//
// Spans are layered: each logical call produces a span named
// "idtoolkit.<operation>" carrying the provider kind, provider id and, on
// failure, the mapped error codes, with a child span named
// "idtoolkit.http.<operation>" per HTTP exchange carrying the method,
// resolved endpoint and status code. Credential material is never recorded;
// pagination spans carry a boolean token-presence flag rather than the
// resume token itself.
//
// # Disabling
//
// With Enabled set to false (the zero value) all providers are no-op
// implementations and recording has effectively zero overhead, so the
// instrumentation handle can be constructed unconditionally.
package instrumentation
