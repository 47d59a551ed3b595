package factory

import (
	"errors"
	"strings"
)

var (
	// ErrPromptInjection indicates the user prompt matched an
	// injection-intent pattern. No provider was contacted.
	ErrPromptInjection = errors.New("prompt injection attempt detected")

	// ErrQuotaExceeded indicates today's generation ceiling is reached.
	ErrQuotaExceeded = errors.New("daily generation limit reached")
)

// ProvidersError reports that every attempted provider failed (or none had
// credentials). Attempts carries one message per attempted provider, in
// priority order.
type ProvidersError struct {
	Attempts []string
}

func (e *ProvidersError) Error() string {
	if len(e.Attempts) == 0 {
		return "code generation failed: no provider credentials configured"
	}
	return "code generation failed: " + strings.Join(e.Attempts, " / ")
}

// SecurityError reports that the generated code failed the security screen.
// Issues carries one message per violated rule. The generation is rejected
// wholesale; nothing is persisted.
type SecurityError struct {
	Issues []string
}

func (e *SecurityError) Error() string {
	return "security screening failed: " + strings.Join(e.Issues, "; ")
}
