package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

// AdvisorService manages staff accounts. Role rules:
//   - DEVELOPER may create and edit any account.
//   - MANAGEMENT may only create AGENT accounts and edit AGENT targets.
//   - Nobody may change their own role, whatever their privilege.
type AdvisorService struct {
	repo ports.AdvisorRepository
	log  zerolog.Logger
}

func NewAdvisorService(repo ports.AdvisorRepository, log zerolog.Logger) *AdvisorService {
	return &AdvisorService{repo: repo, log: log}
}

// Create registers a new advisor account.
func (s *AdvisorService) Create(ctx context.Context, actor ports.Actor, input ports.CreateAdvisorInput) (*domain.Advisor, error) {
	if input.Name == "" || input.Email == "" || len(input.Password) < 8 {
		return nil, domain.ErrInvalidCredentials
	}

	role := input.Role
	if role == "" {
		role = domain.RoleAgent
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}
	if actor.Role != domain.RoleDeveloper && role != domain.RoleAgent {
		return nil, domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Advisor{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("advisor_id", created.ID).Str("role", string(created.Role)).Msg("advisor created")
	return created, nil
}

// Update applies a role and/or password change to an existing account.
func (s *AdvisorService) Update(ctx context.Context, actor ports.Actor, input ports.UpdateAdvisorInput) error {
	target, err := s.repo.FindByID(ctx, input.AdvisorID)
	if err != nil {
		return err
	}

	if input.Role != "" && !input.Role.Valid() {
		return domain.ErrInvalidCredentials
	}

	// Self-protection comes first: a role change for the acting account
	// that differs from the current role is rejected even for
	// developers, while changing one's own password is always allowed.
	if actor.AdvisorID == input.AdvisorID {
		if input.Role != "" && input.Role != target.Role {
			return domain.ErrSelfRoleChange
		}
	} else if actor.Role != domain.RoleDeveloper {
		if target.Role != domain.RoleAgent {
			return domain.ErrForbidden
		}
		if input.Role != "" && input.Role != domain.RoleAgent {
			return domain.ErrForbidden
		}
	}

	var update ports.AdvisorUpdate
	if input.Role != "" {
		update.Role = input.Role
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		update.PasswordHash = string(hash)
	}
	if update.IsEmpty() {
		return domain.ErrNoChanges
	}

	if err := s.repo.Update(ctx, input.AdvisorID, update); err != nil {
		return err
	}

	s.log.Info().
		Str("advisor_id", input.AdvisorID).
		Str("actor_id", actor.AdvisorID).
		Bool("role_changed", update.Role != "").
		Bool("password_changed", update.PasswordHash != "").
		Msg("advisor updated")
	return nil
}

// List returns all advisor accounts.
func (s *AdvisorService) List(ctx context.Context) ([]domain.Advisor, error) {
	return s.repo.List(ctx)
}
