package exchange

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type scriptedSampler struct {
	results  []bool
	calls    int
	fallback int
}

func (s *scriptedSampler) TrySample() (int, bool) {
	ok := s.calls < len(s.results) && s.results[s.calls]
	s.calls++
	return s.calls, ok
}

func (s *scriptedSampler) Fallback() int { return s.fallback }

func TestSampleUntil(t *testing.T) {
	cases := []struct {
		name         string
		results      []bool
		maxAttempts  int
		want         int
		wantFallback bool
		wantCalls    int
	}{
		{name: "first try", results: []bool{true}, maxAttempts: 5, want: 1, wantCalls: 1},
		{name: "third try", results: []bool{false, false, true}, maxAttempts: 5, want: 3, wantCalls: 3},
		{name: "exhausted", results: []bool{false, false, false}, maxAttempts: 3, want: -1, wantFallback: true, wantCalls: 3},
		{name: "zero attempts", results: []bool{true}, maxAttempts: 0, want: -1, wantFallback: true, wantCalls: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &scriptedSampler{results: tc.results, fallback: -1}
			got, fellBack := SampleUntil[int](s, tc.maxAttempts)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.wantFallback, fellBack)
			require.Equal(t, tc.wantCalls, s.calls)
		})
	}
}

func TestDerangementFallback(t *testing.T) {
	for n := 2; n <= 10; n++ {
		names := namesOf(n)
		rotated := derangement{names: names}.Fallback()
		require.True(t, IsDerangement(names, rotated))
		require.ElementsMatch(t, names, rotated)
		require.Equal(t, names[0], rotated[n-1])
	}
}
