// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login with JWT issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/cryptox"
	"github.com/dmitrijs2005/gophstore/internal/server/auth"
	"github.com/dmitrijs2005/gophstore/internal/server/config"
	"github.com/dmitrijs2005/gophstore/internal/server/models"
	"github.com/dmitrijs2005/gophstore/internal/server/repositories/repomanager"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserService provides authentication-related operations:
// - Register: create accounts (argon2id password hashes)
// - Login: verify credentials and mint an HS256 access token
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	tokenIssuer                 string
	tokenAudience               string
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		tokenIssuer:                 cfg.TokenIssuer,
		tokenAudience:               cfg.TokenAudience,
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user with the given email and password.
// Policy violations return common.ErrorValidation; a duplicate email
// returns common.ErrorEmailTaken (registration is allowed to be enumerable,
// unlike login).
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		Email:        email,
		PasswordHash: cryptox.HashPassword([]byte(password), salt),
		Salt:         salt,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorEmailTaken
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return u, nil
}

// Login verifies the credentials and, on success, returns a signed access
// token. Unknown email and wrong password are indistinguishable: both yield
// common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !cryptox.VerifyPassword(user.PasswordHash, []byte(password), user.Salt) {
		return "", common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenIssuer, s.tokenAudience, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}
