// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips dangerous markup from user-supplied rich text
// (profile bios, application statements, chat messages) before it is stored.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
)

// ugcPolicy returns the shared sanitization policy: bluemonday's UGC set
// plus basic table markup.
func ugcPolicy() *bluemonday.Policy {
	once.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowTables()
		policy = p
	})
	return policy
}

// Sanitize returns s with scripts, event handlers, and javascript: URLs
// removed. Safe inline formatting, links, and tables pass through.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugcPolicy().Sanitize(s)
}
