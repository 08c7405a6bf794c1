package otel_test

import (
	"context"
	"errors"
	"reserva/infras/otel"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recorder(t *testing.T) (otel.Otel, *tracetest.SpanRecorder) {
	t.Helper()

	rec := tracetest.NewSpanRecorder()
	ot := otel.FromProvider(trace.NewTracerProvider(trace.WithSpanProcessor(rec)))

	t.Cleanup(func() { _ = ot.Shutdown(context.Background()) })

	return ot, rec
}

func TestScope_Attributes(t *testing.T) {
	ot, rec := recorder(t)

	_, scope := ot.NewScope(context.Background(), "service", "service.booking.Create")
	scope.SetAttribute("salon", "Sala de Juntas")
	scope.SetAttribute("slots", 14)
	scope.SetAttributes(map[string]any{"ok": true, "rooms": []string{"a", "b"}})
	scope.AddEvent("inserted")
	scope.End()

	spans := rec.Ended()
	assert.Len(t, spans, 1)
	assert.Equal(t, "service.booking.Create", spans[0].Name())
	assert.Equal(t, "service", spans[0].InstrumentationScope().Name)
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("salon", "Sala de Juntas"),
		attribute.Int("slots", 14),
		attribute.Bool("ok", true),
		attribute.StringSlice("rooms", []string{"a", "b"}),
	}, spans[0].Attributes())
	assert.Len(t, spans[0].Events(), 1)
}

func TestScope_TraceIfError(t *testing.T) {
	ot, rec := recorder(t)

	_, ok := ot.NewScope(context.Background(), "repository", "clean")
	ok.TraceIfError(nil)
	ok.End()

	_, failed := ot.NewScope(context.Background(), "repository", "failed")
	failed.TraceIfError(errors.New("exclusion violation"))
	failed.End()

	spans := rec.Ended()
	assert.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "exclusion violation", spans[1].Status().Description)
}

func TestNewScope_ChildSharesTrace(t *testing.T) {
	ot, rec := recorder(t)

	ctx, parent := ot.NewScope(context.Background(), "handler", "parent")
	_, child := ot.NewScope(ctx, "service", "child")
	child.End()
	parent.End()

	spans := rec.Ended()
	assert.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}
