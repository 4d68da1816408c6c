package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidChannel(t *testing.T) {
	for _, ch := range []Channel{ChannelSMS, ChannelEmail, ChannelWeb} {
		assert.True(t, ValidChannel(ch), string(ch))
	}
	assert.False(t, ValidChannel("fax"))
	assert.False(t, ValidChannel(""))
}
