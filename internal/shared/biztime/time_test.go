package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClaimMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "mid month",
			in:   time.Date(2026, 9, 15, 12, 30, 0, 0, time.UTC),
			want: "2026-09",
		},
		{
			name: "month boundary stays in new month",
			in:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			want: "2026-10",
		},
		{
			name: "non-UTC input is normalized",
			in:   time.Date(2026, 10, 1, 5, 0, 0, 0, time.FixedZone("UTC+8", 8*3600)),
			want: "2026-09",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClaimMonth(tt.in))
		})
	}
}
