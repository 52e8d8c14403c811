// Package redact strips credentials, keys, personal data and
// infrastructure details from strings before they are logged or sent to
// clients.
package redact

import "regexp"

// Placeholders written in place of redacted values.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	HashPlaceholder       = "[REDACTED_HASH]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	PathPlaceholder       = "[REDACTED_PATH]"
	HostPlaceholder       = "[REDACTED_HOST]"
	SQLValuesPlaceholder  = "[SQL_VALUES_REDACTED]"
	StackTracePlaceholder = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules run in order; later rules see the output of earlier ones.
var rules = []rule{
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*`), StackTracePlaceholder},
	{regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*)://[^\s/@]+@`), "${1}://" + CredentialPlaceholder + "@"},
	{regexp.MustCompile(`eyJ[\w-]+\.eyJ[\w-]+\.[\w-]+`), JWTPlaceholder},
	// Google API keys, as used for the Gemini backend.
	{regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`), KeyPlaceholder},
	{regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`), HashPlaceholder},
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret)\s*[=:]\s*\S+`), "${1}=" + CredentialPlaceholder},
	{regexp.MustCompile(`(?i)\b(api[_-]?key|token|jwt_secret)\s*[=:]\s*\S+`), "${1}=" + KeyPlaceholder},
	{regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`), EmailPlaceholder},
	{
		regexp.MustCompile(`(?is)\b(SELECT|INSERT|UPDATE|DELETE)\b(.*?)\b(VALUES|WHERE|SET)\b.*`),
		"${1}${2}${3} " + SQLValuesPlaceholder,
	},
	{regexp.MustCompile(`(?:/[\w.-]+){2,}`), PathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(?:\\[^\\\s]+)+`), PathPlaceholder},
	{regexp.MustCompile(`\b(?:[A-Za-z0-9-]+\.)+[A-Za-z]{2,}:\d{1,5}\b`), HostPlaceholder},
}

// String redacts sensitive information from s.
func String(s string) string {
	for _, r := range rules {
		if s == "" {
			return s
		}
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}

// Error redacts err's message. A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
