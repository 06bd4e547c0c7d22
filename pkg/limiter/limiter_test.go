package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	cases := map[string]float64{
		"5-S":    5,
		"120-M":  2,
		"3600-H": 1,
		"8640-D": 0.1,
	}
	for in, want := range cases {
		r, err := ParseLimit(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, r.Rate, 1e-9, in)
	}
}

func TestParseLimitRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "5/S", "5-X", "-H"} {
		_, err := ParseLimit(in)
		assert.Error(t, err, in)
	}
}

func TestRouteToKeyString(t *testing.T) {
	assert.Equal(t, "-v1-sessions-_id-submit", routeToKeyString("/v1/sessions/:id/submit"))
}
