package images_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resto-crm/api/internal/images"
)

func TestURLEncodesTag(t *testing.T) {
	var r images.Resolver
	assert.Equal(t, "https://source.unsplash.com/100x100/?pasta+carbonara", r.URL("pasta carbonara", 100))
}

func TestURLBlankTagFallsBack(t *testing.T) {
	var r images.Resolver
	assert.Equal(t, "https://source.unsplash.com/200x200/?restaurant+food", r.URL("  ", 200))
}

func TestURLNonPositiveSizeDefaults(t *testing.T) {
	var r images.Resolver
	assert.Equal(t, "https://source.unsplash.com/100x100/?tiramisu", r.URL("tiramisu", 0))
}
