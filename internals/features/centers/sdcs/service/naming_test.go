package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSDCName(t *testing.T) {
	tests := []struct {
		district string
		suffix   string
		want     string
	}{
		{"Pune", "", "SDC_PUNE"},
		{"north goa", "", "SDC_NORTH_GOA"},
		{"  North   Goa ", "_2", "SDC_NORTH_GOA_2"},
		{"Ranchi", "B", "SDC_RANCHIB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSDCName(tt.district, tt.suffix))
		})
	}
}

func TestSameDistrict(t *testing.T) {
	assert.True(t, sameDistrict("North Goa", "north  goa"))
	assert.False(t, sameDistrict("North Goa", "South Goa"))
}
