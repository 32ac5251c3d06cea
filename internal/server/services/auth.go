// Package services implements the business logic of the storefront: the
// session authority, the cart engine and the order engine. Services hold a
// database handle plus a repository manager and bind repositories to the
// handle (or to a transaction) per call.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// sessionTokenBytes is the entropy of an opaque session token; the hex form
// is twice as long.
const sessionTokenBytes = 32

// AuthService is the session authority: it owns registration, login, logout
// and the resolution of session tokens to live user records.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessionTTL  time.Duration
	bcryptCost  int
}

// NewAuthService constructs the session authority.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		sessionTTL:  cfg.SessionTTL,
		bcryptCost:  bcrypt.DefaultCost,
	}
}

// Register creates a user and opens a session for it. A duplicate email is
// rejected with common.ErrorConflict before anything is persisted; the unique
// index closes the remaining check/insert race.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {

	if email == "" || password == "" || name == "" {
		return nil, "", common.ErrorInvalidInput
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, "", common.ErrorConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, "", common.ErrorConflict
		}
		return nil, "", common.ErrorInternal
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password fail with the same error so the response does not reveal which
// one was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Logout destroys the session. Destroying an already-absent session is not an
// error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repomanager.Sessions(s.db).Delete(ctx, token); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to a live user record, sliding the
// session expiry forward. A token whose user no longer exists destroys the
// session as a side effect.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {

	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	sessionRepo := s.repomanager.Sessions(s.db)

	userID, err := sessionRepo.Touch(ctx, token, s.sessionTTL)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// stale session for a vanished user
			_ = sessionRepo.Delete(ctx, token)
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

func (s *AuthService) startSession(ctx context.Context, userID string) (string, error) {
	token, err := common.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return "", err
	}
	if err := s.repomanager.Sessions(s.db).Create(ctx, userID, token, s.sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}
