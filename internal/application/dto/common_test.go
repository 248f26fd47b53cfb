package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		name       string
		in         dto.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"vacía", dto.PageRequest{}, dto.DefaultPageLimit, 0},
		{"negativos", dto.PageRequest{Limit: -5, Offset: -1}, dto.DefaultPageLimit, 0},
		{"dentro de rango", dto.PageRequest{Limit: 50, Offset: 10}, 50, 10},
		{"en el máximo", dto.PageRequest{Limit: dto.MaxPageLimit}, dto.MaxPageLimit, 0},
		{"excesivo", dto.PageRequest{Limit: 100000000, Offset: 3}, dto.MaxPageLimit, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.Normalize()
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset)
		})
	}
}
