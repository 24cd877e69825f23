package service

import "github.com/microcosm-cc/bluemonday"

// Free-text fields (notes, class content, parent messages) end up rendered
// in the operator's browser, so they pass through a UGC policy on the way in.
var sanitizePolicy = bluemonday.UGCPolicy()

func sanitize(input string) string {
	return sanitizePolicy.Sanitize(input)
}
