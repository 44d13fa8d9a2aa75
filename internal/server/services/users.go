// Package services contains server-side business logic. This file implements
// UserService: registration, login and profile lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/codereviewer/internal/common"
	"github.com/dmitrijs2005/codereviewer/internal/server/auth"
	"github.com/dmitrijs2005/codereviewer/internal/server/config"
	"github.com/dmitrijs2005/codereviewer/internal/server/models"
	"github.com/dmitrijs2005/codereviewer/internal/server/repositories/repomanager"
)

type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int

	dummyOnce sync.Once
	dummyHash string
}

// checkPassword is a seam for tests.
var checkPassword = auth.CheckPassword

// burnPasswordCheck runs a bcrypt comparison against a fixed hash of the
// configured cost, so an unknown email costs as much as a wrong password.
func (s *UserService) burnPasswordCheck(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("not-a-real-password", s.bcryptCost)
	})
	_ = checkPassword(s.dummyHash, password)
}

// NewUserService constructs a UserService. db may be nil when m serves an
// in-memory store.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
	}
}

// Register creates a user and returns its public profile.
//
// Errors: common.ErrValidation if any field is empty, common.ErrConflict if
// the email is taken (including a concurrent insert losing the race on the
// store's unique constraint), common.ErrInternal otherwise.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.Profile, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.ErrValidation
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrConflict
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("%w: lookup user: %v", common.ErrInternal, err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("%w: create user: %v", common.ErrInternal, err)
	}

	p := user.Profile()
	return &p, nil
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password are both reported as common.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", common.ErrValidation
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.burnPasswordCheck(password)
			return "", common.ErrUnauthorized
		}
		return "", fmt.Errorf("%w: lookup user: %v", common.ErrInternal, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", common.ErrInternal, err)
	}
	return token, nil
}

// GetProfile returns the public profile of user id, or common.ErrNotFound if
// the account no longer exists.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: lookup user: %v", common.ErrInternal, err)
	}
	p := user.Profile()
	return &p, nil
}

// ParseToken verifies a bearer token issued by Login.
func (s *UserService) ParseToken(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}
