package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"factforum/internal/common"
	"factforum/internal/server/auth"
	"factforum/internal/server/config"
	"factforum/internal/server/models"
	"factforum/internal/server/repositories/memory"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newUserService(t *testing.T) (*UserService, *memory.Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	m := memory.NewManager()
	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour}
	return NewUserService(db, m, cfg), m, mock
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	s, m, _ := newUserService(t)
	ctx := context.Background()

	account, err := s.Register(ctx, "alice", "pa55word", "student")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	stored, err := m.Accounts(nil).GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if stored.ID != account.ID {
		t.Fatalf("account not retrievable by username")
	}
	if stored.PasswordHash == "pa55word" {
		t.Fatalf("plaintext password stored")
	}
	if !auth.CheckPassword(stored.PasswordHash, "pa55word") {
		t.Fatalf("stored hash does not verify the password")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s, _, _ := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "bob", "pw", "faculty"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	_, err := s.Register(ctx, "bob", "other", "student")
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("expected common.ErrorConflict, got %v", err)
	}
}

func TestRegister_InvalidRole(t *testing.T) {
	s, _, _ := newUserService(t)

	_, err := s.Register(context.Background(), "carol", "pw", "janitor")
	if !errors.Is(err, common.ErrorInvalidRole) {
		t.Fatalf("expected common.ErrorInvalidRole, got %v", err)
	}
}

func TestRegister_EmptyFields(t *testing.T) {
	s, _, _ := newUserService(t)

	if _, err := s.Register(context.Background(), "", "pw", "student"); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation for empty username, got %v", err)
	}
	if _, err := s.Register(context.Background(), "dave", "", "student"); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation for empty password, got %v", err)
	}
}

func TestAuthenticate_Success(t *testing.T) {
	s, _, _ := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "alice", "pw", "student"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	result, err := s.Authenticate(ctx, "alice", "pw", "student")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}

	id, err := auth.VerifyToken(result.Token, []byte("test-secret"))
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if id.Username != "alice" || id.Role != models.RoleStudent {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestAuthenticate_RoleMismatch(t *testing.T) {
	s, _, _ := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "alice", "pw", "student"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// correct credentials, wrong asserted role
	_, err := s.Authenticate(ctx, "alice", "pw", "faculty")
	if !errors.Is(err, common.ErrorRoleMismatch) {
		t.Fatalf("expected common.ErrorRoleMismatch, got %v", err)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	s, _, _ := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "alice", "pw", "student"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err := s.Authenticate(ctx, "alice", "nope", "student")
	if !errors.Is(err, common.ErrorInvalidCredential) {
		t.Fatalf("expected common.ErrorInvalidCredential, got %v", err)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	s, _, _ := newUserService(t)

	_, err := s.Authenticate(context.Background(), "ghost", "pw", "student")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestSuspend_BlocksLoginButNotIssuedTokens(t *testing.T) {
	s, _, _ := newUserService(t)
	ctx := context.Background()

	account, err := s.Register(ctx, "alice", "pw", "student")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	result, err := s.Authenticate(ctx, "alice", "pw", "student")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}

	if _, err := s.SetActive(ctx, account.ID, false); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}

	_, err = s.Authenticate(ctx, "alice", "pw", "student")
	if !errors.Is(err, common.ErrorAccountSuspended) {
		t.Fatalf("expected common.ErrorAccountSuspended, got %v", err)
	}

	// tokens are stateless: the one issued before suspension still verifies
	if _, err := auth.VerifyToken(result.Token, []byte("test-secret")); err != nil {
		t.Fatalf("token issued before suspension must remain valid, got %v", err)
	}
}

func TestSetActive_Idempotent(t *testing.T) {
	s, _, _ := newUserService(t)
	ctx := context.Background()

	account, err := s.Register(ctx, "alice", "pw", "student")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	for i := 0; i < 2; i++ {
		got, err := s.SetActive(ctx, account.ID, true)
		if err != nil {
			t.Fatalf("SetActive call %d error: %v", i+1, err)
		}
		if !got.Active {
			t.Fatalf("expected active=true after call %d", i+1)
		}
	}
}

func TestSetRole_UnknownAccount(t *testing.T) {
	s, _, _ := newUserService(t)

	_, err := s.SetRole(context.Background(), 404, "admin")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteAccount_RefusedWhileDependentsExist(t *testing.T) {
	s, m, mock := newUserService(t)
	ctx := context.Background()

	account, err := s.Register(ctx, "alice", "pw", "student")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, err := m.Queries(nil).Create(ctx, &models.Query{
		Title: "t", Description: "d", StudentID: account.ID, CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Create query error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = s.DeleteAccount(ctx, account.ID)
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("expected common.ErrorConflict, got %v", err)
	}

	// the account must survive the refused delete
	if _, err := m.Accounts(nil).GetByID(ctx, account.ID); err != nil {
		t.Fatalf("account should still exist, got %v", err)
	}
}

func TestDeleteAccount_Success(t *testing.T) {
	s, m, mock := newUserService(t)
	ctx := context.Background()

	account, err := s.Register(ctx, "alice", "pw", "student")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	deleted, err := s.DeleteAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("DeleteAccount error: %v", err)
	}
	if deleted.Username != "alice" {
		t.Fatalf("unexpected deleted account: %+v", deleted)
	}

	if _, err := m.Accounts(nil).GetByID(ctx, account.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected account to be gone, got %v", err)
	}
}
