package repository

import (
	"context"
	"errors"
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/testutil"
	"testing"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and look up", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewUserRepository(db)

		user := &entity.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("FindByEmail() error = %v", err)
		}
		if byEmail == nil || byEmail.ID != user.ID {
			t.Errorf("FindByEmail() = %v, want user %d", byEmail, user.ID)
		}

		byID, err := repo.FindByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if byID == nil || byID.Email != "alice@example.com" {
			t.Errorf("FindByID() = %v, want alice", byID)
		}

		exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("ExistsByEmail() error = %v", err)
		}
		if !exists {
			t.Error("ExistsByEmail() = false, want true")
		}
	})

	t.Run("missing users are nil without error", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewUserRepository(db)

		user, err := repo.FindByEmail(ctx, "nobody@example.com")
		if err != nil || user != nil {
			t.Errorf("FindByEmail() = %v, %v; want nil, nil", user, err)
		}

		user, err = repo.FindByID(ctx, 12)
		if err != nil || user != nil {
			t.Errorf("FindByID() = %v, %v; want nil, nil", user, err)
		}

		exists, err := repo.ExistsByEmail(ctx, "nobody@example.com")
		if err != nil || exists {
			t.Errorf("ExistsByEmail() = %v, %v; want false, nil", exists, err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewUserRepository(db)

		if err := repo.Create(ctx, &entity.User{Username: "a", Email: "same@example.com", PasswordHash: "h"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		err := repo.Create(ctx, &entity.User{Username: "b", Email: "same@example.com", PasswordHash: "h"})
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Errorf("Create() error = %v, want %v", err, ErrDuplicateEmail)
		}
	})
}
