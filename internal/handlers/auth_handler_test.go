package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "Riverside Rovers", "riverside-rovers"},
		{"punctuation stripped", "St. Mary's FC!", "st-marys-fc"},
		{"underscores become dashes", "north_end_club", "north-end-club"},
		{"surrounding space trimmed", "  Harbour Run  ", "harbour-run"},
		{"digits survive", "5k Fun Run 2026", "5k-fun-run-2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}

func TestSlugifyNeverEmpty(t *testing.T) {
	assert.NotEmpty(t, slugify("!!!"))
	assert.NotEmpty(t, slugify(""))
}
