package ptr

// To returns a pointer to a copy of v. Request DTOs use pointers to tell a
// missing number apart from zero.
func To[T any](v T) *T {
	return &v
}
