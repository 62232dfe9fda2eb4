package query

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Mutation describes a write and the keys it makes stale.
type Mutation[In any] struct {
	Name        string
	Do          func(ctx context.Context, in In) error
	Invalidates func(in In) []Key
}

// Mutate runs m and, only when it succeeds, invalidates each dependent key
// prefix exactly once. Failures leave the cache untouched.
func Mutate[In any](ctx context.Context, c *Client, m Mutation[In], in In) error {
	ctx, span := c.tracer.Start(ctx, "query.mutate", trace.WithAttributes(attribute.String("mutation.name", m.Name)))
	defer span.End()

	if err := m.Do(ctx, in); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if m.Invalidates == nil {
		return nil
	}
	for _, key := range m.Invalidates(in) {
		c.Invalidate(ctx, key)
	}
	return nil
}
