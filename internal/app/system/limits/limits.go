// internal/app/system/limits/limits.go
package limits

// Input size limits for user-supplied content.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxChatMessageLen is the maximum length, in bytes, of a single
	// chat message body after sanitization.
	MaxChatMessageLen = 4 << 10 // 4 KB

	// MaxBioLen is the maximum length, in bytes, of a profile bio
	// after sanitization.
	MaxBioLen = 16 << 10 // 16 KB
)
