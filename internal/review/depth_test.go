package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func breakpoints() ReviewConfig {
	cfg := DefaultReviewConfig()
	cfg.SmallMaxFiles = 10
	cfg.SmallMaxChanges = 300
	cfg.MediumMaxFiles = 20
	cfg.MediumMaxChanges = 1500
	return cfg
}

func TestSelectDepth(t *testing.T) {
	cfg := breakpoints()

	tests := []struct {
		name    string
		files   int
		changes int
		want    DepthPolicy
	}{
		{"small PR", 3, 40, DepthDetailed},
		{"at small boundary", 10, 300, DepthDetailed},
		{"medium by files", 15, 200, DepthStandard},
		{"medium by changes", 5, 800, DepthStandard},
		{"large PR", 25, 4000, DepthFocused},
		{"few files huge diff", 3, 9000, DepthFocused},
		{"many files small diff", 40, 100, DepthFocused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectDepth(tt.files, tt.changes, cfg))
		})
	}
}

func TestParseDepth(t *testing.T) {
	tests := []struct {
		input   string
		want    DepthPolicy
		wantErr bool
	}{
		{"detailed", DepthDetailed, false},
		{"standard", DepthStandard, false},
		{"focused", DepthFocused, false},
		{" Detailed ", DepthDetailed, false},
		{"", "", true},
		{"deep", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDepth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWantsFullContent(t *testing.T) {
	cfg := DefaultReviewConfig()
	cfg.StandardContentMaxChars = 1000

	assert.True(t, DepthDetailed.wantsFullContent(999999, cfg))
	assert.True(t, DepthStandard.wantsFullContent(500, cfg))
	assert.False(t, DepthStandard.wantsFullContent(2000, cfg))
	assert.False(t, DepthFocused.wantsFullContent(1, cfg))
}
