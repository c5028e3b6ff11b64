package optional

type Optional[T any] struct {
	present bool
	value   T
}

func (o Optional[T]) IsPresent() bool {
	return o.present
}

func (o Optional[T]) Value() T {
	return o.value
}

// Get returns the contained value and whether it is present, for use in the
// common comma-ok form.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{
		present: true,
		value:   v,
	}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}
