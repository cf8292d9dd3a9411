package user_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/platform/db"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

func newParams(email string) user.CreateParams {
	now := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	return user.CreateParams{
		Username:              "alice",
		Email:                 email,
		PasswordHash:          "$argon2id$v=19$m=16,t=1,p=1$c2FsdA$aGFzaA",
		VerificationToken:     "123456",
		VerificationExpiresAt: now.Add(24 * time.Hour),
		Now:                   now,
	}
}

func TestRepository_CreateAndFind(t *testing.T) {
	t.Parallel()

	repo := user.NewRepository(db.NewTestDB(t))
	params := newParams("alice@example.com")

	created, err := repo.Create(t.Context(), params)
	if err != nil {
		t.Fatalf("repo.Create() = %v, want: nil", err)
	}

	if created.ID <= 0 {
		t.Errorf("created.ID = %d, want: a positive database id", created.ID)
	}

	found, err := repo.FindByEmail(t.Context(), params.Email)
	if err != nil {
		t.Fatalf("repo.FindByEmail() = %v, want: nil", err)
	}

	if found.ID != created.ID {
		t.Errorf("found.ID = %d, want: %d", found.ID, created.ID)
	}

	if found.Username != "alice" || found.PasswordHash != params.PasswordHash {
		t.Errorf("found = %+v, want username and hash from %+v", found, params)
	}

	if found.IsVerified {
		t.Error("found.IsVerified = true, want: false")
	}

	if found.VerificationToken == nil || *found.VerificationToken != "123456" {
		t.Errorf("found.VerificationToken = %v, want: %q", found.VerificationToken, "123456")
	}

	if found.VerificationExpiresAt == nil || !found.VerificationExpiresAt.Equal(params.VerificationExpiresAt) {
		t.Errorf("found.VerificationExpiresAt = %v, want: %v", found.VerificationExpiresAt, params.VerificationExpiresAt)
	}

	if !found.CreatedAt.Equal(params.Now) {
		t.Errorf("found.CreatedAt = %v, want: %v", found.CreatedAt, params.Now)
	}
}

func TestRepository_SequentialIDs(t *testing.T) {
	t.Parallel()

	repo := user.NewRepository(db.NewTestDB(t))

	first, err := repo.Create(t.Context(), newParams("a@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	second, err := repo.Create(t.Context(), newParams("b@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	if second.ID <= first.ID {
		t.Errorf("second.ID = %d, want: greater than %d", second.ID, first.ID)
	}
}

func TestRepository_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := user.NewRepository(db.NewTestDB(t))

	if _, err := repo.Create(t.Context(), newParams("dup@example.com")); err != nil {
		t.Fatal(err)
	}

	_, err := repo.Create(t.Context(), newParams("dup@example.com"))
	if !errors.Is(err, user.ErrDuplicateEmail) {
		t.Errorf("repo.Create() = %v, want: %v", err, user.ErrDuplicateEmail)
	}
}

func TestRepository_EmailIsCaseSensitive(t *testing.T) {
	t.Parallel()

	repo := user.NewRepository(db.NewTestDB(t))

	if _, err := repo.Create(t.Context(), newParams("Case@example.com")); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.FindByEmail(t.Context(), "case@example.com"); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("repo.FindByEmail() = %v, want: %v", err, user.ErrNotFound)
	}
}

func TestRepository_FindByEmailNotFound(t *testing.T) {
	t.Parallel()

	repo := user.NewRepository(db.NewTestDB(t))

	_, err := repo.FindByEmail(t.Context(), "ghost@example.com")
	if !errors.Is(err, user.ErrNotFound) {
		t.Errorf("repo.FindByEmail() = %v, want: %v", err, user.ErrNotFound)
	}
}

func TestRepository_ClosedDatabase(t *testing.T) {
	t.Parallel()

	conn := db.NewTestDB(t)
	repo := user.NewRepository(conn)
	if err := conn.Close(); err != nil {
		t.Fatal(err)
	}

	_, err := repo.FindByEmail(t.Context(), "a@example.com")
	if !errors.Is(err, db.ErrUnavailable) {
		t.Errorf("repo.FindByEmail() = %v, want: %v", err, db.ErrUnavailable)
	}
}
