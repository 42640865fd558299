package cart

import "context"

type modelKey struct{}

// WithModel returns a context carrying the session cart model
func WithModel(ctx context.Context, m *Model) context.Context {
	return context.WithValue(ctx, modelKey{}, m)
}

// FromContext returns the cart model carried by ctx
func FromContext(ctx context.Context) (*Model, bool) {
	m, ok := ctx.Value(modelKey{}).(*Model)
	return m, ok && m != nil
}
