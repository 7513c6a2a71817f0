package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer strips markup from free text before it is persisted.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Clean removes every tag from in. Entities escaped by the policy are decoded
// again so plain text such as "R&D" survives unchanged.
func (s *TextSanitizer) Clean(in string) string {
	if in == "" {
		return in
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(in)))
}

// CleanPtr cleans *p in place when p is non-nil.
func (s *TextSanitizer) CleanPtr(p *string) {
	if p != nil {
		*p = s.Clean(*p)
	}
}
