// Package secrets defines the named-credential provider the importer reads
// its payroll API credentials from.
package secrets

import (
	"context"
	"strings"

	"github.com/spf13/viper"
)

// Provider returns named credential strings. Implementations must fail when
// a value is absent or empty rather than hand back blanks.
type Provider interface {
	Get(ctx context.Context, name string) (string, error)
}

// ErrSecretNotFound indicates a missing or empty secret value
type ErrSecretNotFound struct {
	Name string
}

func (e ErrSecretNotFound) Error() string {
	return "secret not found or empty: " + e.Name
}

// Is implements the errors.Is interface for ErrSecretNotFound
func (e ErrSecretNotFound) Is(target error) bool {
	t, ok := target.(ErrSecretNotFound)
	if !ok {
		return false
	}
	if t.Name == "" {
		return true
	}
	return e.Name == t.Name
}

// EnvProvider reads secrets from the process environment. Values are
// trimmed; surrounding whitespace in injected secrets is a recurring
// operational mistake.
type EnvProvider struct {
	v *viper.Viper
}

// NewEnvProvider creates a provider backed by environment variables
func NewEnvProvider() *EnvProvider {
	v := viper.New()
	v.AutomaticEnv()
	return &EnvProvider{v: v}
}

// Get returns the named secret, failing when it is absent or empty
func (p *EnvProvider) Get(_ context.Context, name string) (string, error) {
	value := strings.TrimSpace(p.v.GetString(name))
	if value == "" {
		return "", ErrSecretNotFound{Name: name}
	}
	return value, nil
}
