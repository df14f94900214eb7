package healthcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []CheckResult
		want    string
	}{
		{name: "empty", results: nil, want: StatusOK},
		{name: "all ok", results: []CheckResult{{Status: StatusOK}, {Status: StatusOK}}, want: StatusOK},
		{name: "warn wins over ok", results: []CheckResult{{Status: StatusOK}, {Status: StatusWarn}}, want: StatusWarn},
		{name: "error wins over warn", results: []CheckResult{{Status: StatusWarn}, {Status: StatusError}, {Status: StatusOK}}, want: StatusError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Aggregate(tt.results))
		})
	}
}

type fixedCounter int

func (c fixedCounter) ProviderCount() int { return int(c) }

func TestImagesChecker(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	checks := NewImagesChecker(fixedCounter(2)).ListChecks(ctx)
	assert.Equal(t, []CheckResult{{Component: "images", Status: StatusOK}}, checks)

	checks = NewImagesChecker(fixedCounter(0)).ListChecks(ctx)
	assert.Equal(t, StatusWarn, checks[0].Status)

	checks = NewImagesChecker(nil).ListChecks(ctx)
	assert.Equal(t, StatusWarn, checks[0].Status)
}
