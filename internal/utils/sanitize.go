package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const maxSanitizePasses = 4

var strictPolicy = bluemonday.StrictPolicy()

// Sanitize strips every HTML element from user supplied free text and stores plain characters,
// so "Tom & Jerry" stays "Tom & Jerry" rather than its entity form. Encoded markup is decoded
// before stripping, and the result is stable under repeated calls.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)

	for range maxSanitizePasses {
		next := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(html.UnescapeString(s))))
		if next == s {
			break
		}

		s = next
	}

	return s
}
