package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-accompany/bayes"
)

func TestDefaultMapping(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 120, cfg.Tempo)
	assert.Equal(t, uint8(36), cfg.KickNote)
	assert.Equal(t, uint8(38), cfg.SnareNote)
	assert.Equal(t, uint8(37), cfg.RimNote)
}

func TestIdentify(t *testing.T) {
	cfg := Default()

	tests := []struct {
		note uint8
		want bayes.Instrument
	}{
		{36, bayes.Kick},
		{38, bayes.Snare},
		{37, bayes.Rim},
		{60, bayes.None},
		{0, bayes.None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.Identify(tt.note), "note %d", tt.note)
	}
}

func TestIdentifyFollowsRemapping(t *testing.T) {
	cfg := Default()
	cfg.KickNote = 35 // alternate GM kick

	assert.Equal(t, bayes.Kick, cfg.Identify(35))
	assert.Equal(t, bayes.None, cfg.Identify(36))
}
