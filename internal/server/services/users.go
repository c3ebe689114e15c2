// Package services contains server-side business logic. This file implements
// UserService: the credential store operations (registration, authentication)
// and the admin console's account lifecycle management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"factforum/internal/common"
	"factforum/internal/dbx"
	"factforum/internal/server/auth"
	"factforum/internal/server/config"
	"factforum/internal/server/models"
	"factforum/internal/server/repositories/repomanager"
)

// AuthResult is what a successful login yields: the resolved account plus a
// signed session token carrying its username and role claim.
type AuthResult struct {
	Account *models.Account
	Token   string
}

// UserService provides credential operations:
//   - Register: create accounts (self-registration and admin add-user)
//   - Authenticate: verify credentials against an asserted role and mint a token
//   - SetRole / SetActive / DeleteAccount / ListAccounts: admin mutations
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new account with a bcrypt hash of the password. The
// plaintext is never stored. Duplicate usernames yield common.ErrorConflict,
// roles outside the closed set common.ErrorInvalidRole.
func (s *UserService) Register(ctx context.Context, username, password, role string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	parsedRole, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         parsedRole,
		Active:       true,
	}

	repo := s.repomanager.Accounts(s.db)
	account, err = repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, common.ErrorInternal
	}

	return account, nil
}

// Authenticate validates credentials against an asserted role and mints a
// session token. The caller must claim the role up front; a wrong claim is
// rejected with common.ErrorRoleMismatch rather than inferred from the
// account. Checks run in login order: existence, password, role, active flag.
func (s *UserService) Authenticate(ctx context.Context, username, password, claimedRole string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || strings.TrimSpace(claimedRole) == "" {
		return nil, common.ErrorValidation
	}

	parsedRole, err := models.ParseRole(claimedRole)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return nil, common.ErrorInvalidCredential
	}

	if account.Role != parsedRole {
		return nil, common.ErrorRoleMismatch
	}

	if !account.Active {
		return nil, common.ErrorAccountSuspended
	}

	token, err := auth.GenerateToken(account.Username, account.Role, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{Account: account, Token: token}, nil
}

// GetByUsername resolves an account from a token subject.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
}

// ListAccounts returns every account, for the admin console.
func (s *UserService) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	return s.repomanager.Accounts(s.db).List(ctx)
}

// SetRole changes an account's role and returns the updated account.
func (s *UserService) SetRole(ctx context.Context, id int64, role string) (*models.Account, error) {
	parsedRole, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := repo.UpdateRole(ctx, id, parsedRole); err != nil {
		return nil, err
	}

	account.Role = parsedRole
	return account, nil
}

// SetActive suspends (false) or unsuspends (true) an account. Setting the
// flag to its current value is not an error. Suspension only blocks future
// logins; tokens already issued stay valid until they expire.
func (s *UserService) SetActive(ctx context.Context, id int64, active bool) (*models.Account, error) {
	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := repo.UpdateActive(ctx, id, active); err != nil {
		return nil, err
	}

	account.Active = active
	return account, nil
}

// DeleteAccount removes an account. Deletion is refused with
// common.ErrorConflict while the account still owns queries or authored
// responses, so no dangling author references can be left behind.
func (s *UserService) DeleteAccount(ctx context.Context, id int64) (*models.Account, error) {
	var deleted *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		account, err := s.repomanager.Accounts(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}

		ownedQueries, err := s.repomanager.Queries(tx).CountByStudent(ctx, id)
		if err != nil {
			return err
		}
		authoredResponses, err := s.repomanager.Responses(tx).CountByFaculty(ctx, id)
		if err != nil {
			return err
		}
		if ownedQueries > 0 || authoredResponses > 0 {
			return common.ErrorConflict
		}

		if err := s.repomanager.Accounts(tx).Delete(ctx, id); err != nil {
			return err
		}

		deleted = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
