// Package credential checks supervisor and administrator secrets against a
// YAML file of role -> username -> secret.
//
// Secrets starting with "$2" are bcrypt hashes. Anything else is compared
// as plain text in constant time.
package credential

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

const bcryptPrefix = "$2"

type store struct {
	secrets map[model.Role]map[string]string
}

func NewStore(secrets map[model.Role]map[string]string) *store {
	if secrets == nil {
		secrets = make(map[model.Role]map[string]string)
	}
	return &store{secrets: secrets}
}

// LoadFile reads the credential file once at start-up.
func LoadFile(path string) (*store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", path, err)
	}

	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", path, err)
	}

	secrets := make(map[model.Role]map[string]string, len(raw))
	for role, users := range raw {
		r := model.Role(strings.ToLower(strings.TrimSpace(role)))
		switch r {
		case model.RoleSupervisor, model.RoleAdministrator, model.RoleTechnician:
		default:
			return nil, fmt.Errorf("parse credentials %s: unknown role %q", path, role)
		}
		secrets[r] = users
	}

	return NewStore(secrets), nil
}

// Authenticate reports whether the pair is valid for the role. Unknown roles
// and users are not errors.
func (s *store) Authenticate(ctx context.Context, role model.Role, creds model.Credentials) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	want, ok := s.secrets[role][creds.Username]
	if !ok || creds.Username == "" || creds.Secret == "" {
		return false, nil
	}

	if strings.HasPrefix(want, bcryptPrefix) {
		err := bcrypt.CompareHashAndPassword([]byte(want), []byte(creds.Secret))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("compare secret for %s: %w", creds.Username, err)
		}
	}

	return subtle.ConstantTimeCompare([]byte(want), []byte(creds.Secret)) == 1, nil
}
