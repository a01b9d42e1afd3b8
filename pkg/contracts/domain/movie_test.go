package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell(t *testing.T) {
	assert.Equal(t, Cell{Value: "Avatar", Present: true}, NewCell("Avatar"))
	assert.Equal(t, Cell{Value: "", Present: true}, NewCell(""))
	assert.False(t, MissingCell().Present)
}

func TestOptional(t *testing.T) {
	runtime := Some(162.0)
	v, ok := runtime.Get()
	assert.True(t, ok)
	assert.Equal(t, 162.0, v)
	assert.True(t, runtime.Valid())
	assert.Equal(t, 162.0, runtime.OrElse(0))

	missing := None[float64]()
	v, ok = missing.Get()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, 90.0, missing.OrElse(90))

	zero := Some("")
	assert.True(t, zero.Valid(), "a present zero value is still present")
}

func TestMovie_HasGenre(t *testing.T) {
	m := Movie{GenreList: []string{"Drama", "Romance"}}

	assert.True(t, m.HasGenre("Drama"))
	assert.False(t, m.HasGenre("drama"))
	assert.False(t, Movie{}.HasGenre("Drama"))
}

func TestMovie_Decade(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{1994, 1990},
		{2000, 2000},
		{2009, 2000},
		{1916, 1910},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Movie{ReleaseYear: tt.year}.Decade(), "year %d", tt.year)
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Min: 1990, Max: 1999}

	assert.True(t, r.Contains(1990))
	assert.True(t, r.Contains(1999))
	assert.False(t, r.Contains(1989.9))
	assert.False(t, r.Contains(2000))
	assert.True(t, Range{Min: 7, Max: 7}.Contains(7))
}
