package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"

	"github.com/hanpama/gqlvalue/internal/docid"
	"github.com/hanpama/gqlvalue/internal/eventbus"
	"github.com/hanpama/gqlvalue/internal/events"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers that turn
// conversion events into spans. If endpoint is empty, no telemetry is
// configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("gqlvalue")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer trace.Tracer
	spans  sync.Map // (docid, stage) -> trace.Span
}

type spanKey struct {
	doc   int64
	stage string
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.ConvertStart) {
		id, _ := docid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "convert."+e.Stage)
		span.SetAttributes(
			attribute.String("convert.stage", e.Stage),
			attribute.String("convert.source", e.Source),
		)
		s.spans.Store(spanKey{doc: id, stage: e.Stage}, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.ConvertFinish) {
		id, _ := docid.FromContext(ctx)
		v, ok := s.spans.LoadAndDelete(spanKey{doc: id, stage: e.Stage})
		if !ok {
			return
		}
		span := v.(trace.Span)
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})
}
