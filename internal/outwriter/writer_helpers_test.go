package outwriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "-"},
		{"string", "UVMap", "UVMap"},
		{"int", 1200, "1200"},
		{"int64", int64(42), "42"},
		{"float respects precision", 21.333, "21.3"},
		{"slice collapses to json", []int{4096, 4096}, "[4096,4096]"},
		{"map collapses to json", map[string]int{"max": 5000}, `{"max":5000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value, 1))
		})
	}
}
