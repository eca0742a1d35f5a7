package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ahmet Yilmaz", "A**** Y*****"},
		{"", Placeholder},
		{"   ", Placeholder},
		{"nan", Placeholder},
		{"NaN", Placeholder},
		{"X", "X"},
		{"A B", "A B"},
		{"Şükrü Öztürk", "Ş**** Ö*****"},
		{"  Ayse   Nur  Demir ", "A*** N** D****"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskName(tt.in), "MaskName(%q)", tt.in)
	}
}

func TestMaskNameIsDeterministic(t *testing.T) {
	assert.Equal(t, MaskName("Mehmet Kaya"), MaskName("Mehmet Kaya"))
}
