package entity

// Optional хранит значение, явно отданное хостом, либо ничего.
// Нулевое значение означает «отсутствует», что отличается от присутствующего нулевого значения.
type Optional[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Optional[T]) IsSet() bool {
	return o.ok
}

func (o Optional[T]) OrZero() T {
	return o.value
}
