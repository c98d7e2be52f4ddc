package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseISODuration(t *testing.T) {
	for _, tc := range []struct {
		input string
		exp   time.Duration
	}{
		{input: "PT1H45M", exp: time.Hour + 45*time.Minute},
		{input: "PT20M", exp: 20 * time.Minute},
		{input: "PT2H1M30S", exp: 2*time.Hour + time.Minute + 30*time.Second},
		{input: "P1DT2H", exp: 26 * time.Hour},
		{input: "P2W", exp: 14 * 24 * time.Hour},
		{input: "PT0S", exp: 0},

		// malformed input parses to zero, no error path
		{input: "", exp: 0},
		{input: "garbage", exp: 0},
		{input: "PT", exp: 0},
		{input: "P", exp: 0},
		{input: "PT1.5S", exp: 0},
		{input: "PT5", exp: 0},
		{input: "1H45M", exp: 0},
		{input: "PT1X", exp: 0},
		{input: "P1H", exp: 0}, // hours are only valid after T
	} {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.exp, ParseISODuration(tc.input))
		})
	}
}
