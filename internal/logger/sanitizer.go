package logger

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Sanitizer masks credentials before they reach a log sink.
//
// Values under a sensitive key (token, password, authorization...) are
// masked outright. Every other string or error value goes through the same
// rewrite rules as the message, so a token inside a logged URL or a
// transport error is caught as well.
type Sanitizer struct {
	mu       sync.RWMutex
	patterns []SanitizeRule
}

// SanitizeRule is a single message rewrite
type SanitizeRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewSanitizer returns a sanitizer with the default rules
func NewSanitizer() *Sanitizer {
	return &Sanitizer{patterns: defaultSanitizeRules()}
}

func defaultSanitizeRules() []SanitizeRule {
	return []SanitizeRule{
		{regexp.MustCompile(`(?i)bearer\s+\S+`), "bearer ***"},
		{regexp.MustCompile(`(?i)access_token=[^&\s]+`), "access_token=***"},
		{regexp.MustCompile(`(?i)refresh_token=[^&\s]+`), "refresh_token=***"},
		{regexp.MustCompile(`(?i)client_secret=[^&\s]+`), "client_secret=***"},
		{regexp.MustCompile(`(?i)([?&])code=[^&\s]+`), "${1}code=***"},
		{regexp.MustCompile(`(?i)/auth/token/[^/\s?]+`), "/auth/token/***"},
		{regexp.MustCompile(`(?i)password=\S+`), "password=***"},

		{regexp.MustCompile(`/home/[^/]+`), "/home/***"},
		{regexp.MustCompile(`/Users/[^/]+`), "/Users/***"},
	}
}

// Sanitize applies every pattern to input
func (s *Sanitizer) Sanitize(input string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := input
	for _, rule := range s.patterns {
		result = rule.Pattern.ReplaceAllString(result, rule.Replacement)
	}
	return result
}

// SanitizeArgs masks the values in slog key/value pairs. It never modifies args.
func (s *Sanitizer) SanitizeArgs(args []any) []any {
	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i+1 < len(result); i += 2 {
		key, _ := result[i].(string)
		sensitive := isSensitiveKey(key)

		switch v := result[i+1].(type) {
		case string:
			if sensitive {
				result[i+1] = maskValue(v)
			} else {
				result[i+1] = s.Sanitize(v)
			}
		case error:
			if sensitive {
				result[i+1] = maskValue(v.Error())
			} else if clean := s.Sanitize(v.Error()); clean != v.Error() {
				result[i+1] = clean
			}
		}
	}
	return result
}

var sensitiveKeys = []string{
	"password", "passwd", "token", "secret",
	"authorization", "credential", "api_key", "apikey",
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, sk := range sensitiveKeys {
		if strings.Contains(lower, sk) {
			return true
		}
	}
	return false
}

// maskValue keeps at most the first and last character
func maskValue(value string) string {
	switch {
	case len(value) <= 2:
		return "***"
	case len(value) <= 8:
		return value[:1] + "***"
	default:
		return fmt.Sprintf("%s***%s", value[:1], value[len(value)-1:])
	}
}

// AddRule appends a custom message rewrite
func (s *Sanitizer) AddRule(pattern string, replacement string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = append(s.patterns, SanitizeRule{Pattern: re, Replacement: replacement})
	return nil
}
