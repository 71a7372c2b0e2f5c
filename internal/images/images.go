// Package images resolves free-text image tags to displayable URLs.
package images

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	baseURL        = "https://source.unsplash.com"
	placeholderTag = "restaurant food"
)

// Resolver maps a tag like "pasta carbonara" to an image URL of the given
// square size. A blank tag falls back to a generic placeholder so callers
// always get something displayable.
type Resolver struct{}

// URL returns the image URL for the tag at size×size pixels.
func (Resolver) URL(tag string, size int) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = placeholderTag
	}
	if size <= 0 {
		size = 100
	}
	return fmt.Sprintf("%s/%dx%d/?%s", baseURL, size, size, url.QueryEscape(tag))
}
