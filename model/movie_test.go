package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnailURL(t *testing.T) {
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", ThumbnailURL("dQw4w9WgXcQ"))
}
