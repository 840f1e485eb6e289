package tulip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/depthlath/tulip"
)

// TestNewRand_ZeroSeedPolicy checks that seed 0 maps to the fixed default.
func TestNewRand_ZeroSeedPolicy(t *testing.T) {
	assert.Equal(t, tulip.NewRand(1).Int63(), tulip.NewRand(0).Int63())
	assert.NotEqual(t, tulip.NewRand(1).Int63(), tulip.NewRand(2).Int63())
}

func TestStreams_KeyedNotOrdered(t *testing.T) {
	s := tulip.NewStreams(tulip.NewRand(9))
	first := s.Rand(7).Int63()
	_ = s.Rand(3).Int63()
	assert.Equal(t, first, s.Rand(7).Int63(), "a key's stream must not depend on other requests")
	assert.NotEqual(t, first, s.Rand(8).Int63())

	again := tulip.NewStreams(tulip.NewRand(9))
	assert.Equal(t, first, again.Rand(7).Int63())
	other := tulip.NewStreams(tulip.NewRand(10))
	assert.NotEqual(t, first, other.Rand(7).Int63())

	assert.Equal(t, tulip.NewStreams(nil).Rand(3).Int63(), tulip.NewStreams(nil).Rand(3).Int63())
}
