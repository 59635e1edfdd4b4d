package device

import (
	"context"
	"fmt"
	"reflect"
)

// Value reads name through r and returns it as T. A null value yields the
// zero T.
func Value[T any](ctx context.Context, r Resolver, name string) (T, error) {
	var zero T
	v, err := r.GetAttribute(ctx, name)
	if err != nil || v == nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T, want %v", ErrTypeMismatch, name, v, reflect.TypeFor[T]())
	}
	return t, nil
}
