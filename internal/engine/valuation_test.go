package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCentsPerPoint(t *testing.T) {
	tests := []struct {
		name   string
		cash   decimal.Decimal
		points int64
		want   float64
	}{
		{"reference domestic economy", decimal.NewFromInt(189), 12500, 1.512},
		{"even division", decimal.NewFromInt(250), 25000, 1.0},
		{"zero cash", decimal.Zero, 1000, 0},
		{"zero points yields zero, not a division error", decimal.NewFromInt(500), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CentsPerPoint(tt.cash, tt.points), 1e-9)
		})
	}
}
