package respond

import (
	"regexp"
)

var (
	// The Anthropic pattern must be applied before the generic sk- pattern
	// so already-masked strings are not matched twice.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// Credentials embedded in URLs (user:password@host).
	urlCredentialPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)
)

// SanitizeError returns the error message with API keys and embedded URL
// credentials masked, suitable for logging.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = urlCredentialPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
