package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeeded_Intn(t *testing.T) {
	a := assert.New(t)

	s1 := NewSeeded(42)
	s2 := NewSeeded(42)
	for i := 0; i < 100; i++ {
		v := s1.Intn(13)
		a.Equal(v, s2.Intn(13))
		a.True(v >= 0 && v < 13)
	}
}
