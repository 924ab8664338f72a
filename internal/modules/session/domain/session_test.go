package domain_test

import (
	"testing"

	"learnhub/internal/modules/session/domain"
)

func TestProgressPercentClamps(t *testing.T) {
	t.Parallel()
	cases := map[int]int{-5: 0, 0: 0, 37: 37, 100: 100, 140: 100}
	for in, want := range cases {
		if got := (domain.Session{Progress: in}).ProgressPercent(); got != want {
			t.Fatalf("progress %d: expected %d, got %d", in, want, got)
		}
	}
}
