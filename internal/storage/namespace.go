package storage

import "context"

// Namespaced prefixes every key so several learners can share one backend.
type Namespaced struct {
	inner  Store
	prefix string
}

// WithPrefix wraps inner with a key prefix.
func WithPrefix(inner Store, prefix string) *Namespaced {
	return &Namespaced{inner: inner, prefix: prefix}
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

func (n *Namespaced) SetMany(ctx context.Context, values map[string][]byte) error {
	prefixed := make(map[string][]byte, len(values))
	for k, v := range values {
		prefixed[n.prefix+k] = v
	}
	return SetMany(ctx, n.inner, prefixed)
}
