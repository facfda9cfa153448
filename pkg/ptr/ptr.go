package ptr

// Ptr returns a pointer to the given value.
// Удобно для опциональных полей фильтров и запросов.
func Ptr[T any](v T) *T {
	return &v
}
