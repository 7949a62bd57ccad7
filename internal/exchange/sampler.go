package exchange

// Sampler draws random candidates for a constrained value. Fallback must
// return a value that satisfies the constraint without randomness.
type Sampler[T any] interface {
	TrySample() (T, bool)
	Fallback() T
}

// SampleUntil calls TrySample up to maxAttempts times and returns the first
// accepted candidate. The second return value reports whether Fallback was used.
func SampleUntil[T any](s Sampler[T], maxAttempts int) (T, bool) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if v, ok := s.TrySample(); ok {
			return v, false
		}
	}
	return s.Fallback(), true
}
