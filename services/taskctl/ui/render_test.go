package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{9, "9s"},
		{62, "1m02s"},
		{3723, "1h02m03s"},
		{7200, "2h00m00s"},
		{-5, "0s"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatSeconds(tc.seconds))
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcd1234", ShortID("abcd1234-ef56-7890"))
	assert.Equal(t, "short", ShortID("short"))
}
