package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
	"github.com/rutamundi/backoffice/internal/core/session"
)

// AuthService implements advisor login. Failed lookups and failed
// password checks collapse into the same ErrInvalidCredentials so the
// response does not reveal which accounts exist.
type AuthService struct {
	repo  ports.AdvisorRepository
	codec *session.Codec
	log   zerolog.Logger
}

func NewAuthService(repo ports.AdvisorRepository, codec *session.Codec, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, log: log}
}

// Login checks credentials and returns a signed session token plus the
// advisor record.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Advisor, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	advisor, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdvisorNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(advisor.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(advisor.ID, advisor.Email, advisor.Role)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("advisor_id", advisor.ID).Str("role", string(advisor.Role)).Msg("advisor logged in")
	return token, advisor, nil
}
