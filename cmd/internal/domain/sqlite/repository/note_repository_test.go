package repository

import (
	"context"
	"errors"
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/testutil"
	"testing"
)

func categoryIDs(note *entity.Note) []int64 {
	ids := make([]int64, len(note.Categories))
	for i, c := range note.Categories {
		ids[i] = c.ID
	}
	return ids
}

func equalIDs(got, want []int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates note with empty categories", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")

		note := &entity.Note{Title: "N1", Content: "hello", UserID: alice.ID}
		if err := repo.Create(ctx, note); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if note.ID == 0 {
			t.Error("ID was not assigned")
		}
		if note.Archived {
			t.Error("Archived = true, want false")
		}
		if note.Categories == nil {
			t.Error("Categories = nil, want empty slice")
		}
		if note.CreatedAt == 0 {
			t.Error("CreatedAt was not set")
		}
	})

	t.Run("rejects duplicate title for the same owner", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")

		if err := repo.Create(ctx, &entity.Note{Title: "N1", Content: "a", UserID: alice.ID}); err != nil {
			t.Fatalf("first Create() error = %v", err)
		}

		err := repo.Create(ctx, &entity.Note{Title: "N1", Content: "b", UserID: alice.ID})
		if !errors.Is(err, ErrDuplicateTitle) {
			t.Errorf("second Create() error = %v, want %v", err, ErrDuplicateTitle)
		}
	})

	t.Run("allows the same title for another owner", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		bob := testutil.CreateUser(t, db, "bob")

		if err := repo.Create(ctx, &entity.Note{Title: "N1", Content: "a", UserID: alice.ID}); err != nil {
			t.Fatalf("Create() for alice error = %v", err)
		}
		if err := repo.Create(ctx, &entity.Note{Title: "N1", Content: "b", UserID: bob.ID}); err != nil {
			t.Errorf("Create() for bob error = %v, want nil", err)
		}
	})
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("content only leaves title and archived untouched", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		note := testutil.CreateNote(t, db, alice, "N1")

		archived := true
		if _, err := repo.Update(ctx, note.ID, &entity.NotePatch{Archived: &archived}); err != nil {
			t.Fatalf("archive Update() error = %v", err)
		}

		content := "rewritten"
		updated, err := repo.Update(ctx, note.ID, &entity.NotePatch{Content: &content})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Content != "rewritten" {
			t.Errorf("Content = %q, want %q", updated.Content, "rewritten")
		}
		if updated.Title != "N1" {
			t.Errorf("Title = %q, want N1", updated.Title)
		}
		if !updated.Archived {
			t.Error("Archived = false, want true")
		}
	})

	t.Run("can unarchive", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		note := testutil.CreateNote(t, db, alice, "N1")

		yes, no := true, false
		if _, err := repo.Update(ctx, note.ID, &entity.NotePatch{Archived: &yes}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		updated, err := repo.Update(ctx, note.ID, &entity.NotePatch{Archived: &no})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Archived {
			t.Error("Archived = true, want false")
		}
	})

	t.Run("missing note", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)

		title := "x"
		_, err := repo.Update(ctx, 999, &entity.NotePatch{Title: &title})
		if !errors.Is(err, ErrNoteNotFound) {
			t.Errorf("Update() error = %v, want %v", err, ErrNoteNotFound)
		}
	})

	t.Run("title collision with another note of the owner", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		testutil.CreateNote(t, db, alice, "N1")
		second := testutil.CreateNote(t, db, alice, "N2")

		title := "N1"
		_, err := repo.Update(ctx, second.ID, &entity.NotePatch{Title: &title})
		if !errors.Is(err, ErrDuplicateTitle) {
			t.Errorf("Update() error = %v, want %v", err, ErrDuplicateTitle)
		}
	})

	t.Run("keeping the same title is not a collision", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		note := testutil.CreateNote(t, db, alice, "N1")

		title := "N1"
		if _, err := repo.Update(ctx, note.ID, &entity.NotePatch{Title: &title}); err != nil {
			t.Errorf("Update() error = %v, want nil", err)
		}
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing note", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)

		if err := repo.Delete(ctx, 42); !errors.Is(err, ErrNoteNotFound) {
			t.Errorf("Delete() error = %v, want %v", err, ErrNoteNotFound)
		}
	})

	t.Run("removes every association", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		note := testutil.CreateNote(t, db, alice, "N1")
		work := testutil.CreateCategory(t, db, alice, "work")
		home := testutil.CreateCategory(t, db, alice, "home")

		if _, err := repo.AddCategories(ctx, note.ID, alice.ID, []int64{work.ID, home.ID}); err != nil {
			t.Fatalf("AddCategories() error = %v", err)
		}

		if err := repo.Delete(ctx, note.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if n := testutil.CountLinks(t, db, note.ID); n != 0 {
			t.Errorf("links left = %d, want 0", n)
		}

		found, err := repo.FindByID(ctx, note.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found != nil {
			t.Errorf("FindByID() = %v, want nil", found)
		}
	})
}

func TestNoteRepository_FindAllByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("returns only matching archived notes, newest first", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		bob := testutil.CreateUser(t, db, "bob")

		old := testutil.CreateNote(t, db, alice, "old")
		active := testutil.CreateNote(t, db, alice, "active")
		recent := testutil.CreateNote(t, db, alice, "recent")
		foreign := testutil.CreateNote(t, db, bob, "foreign")

		db.Model(&entity.Note{}).Where("id = ?", old.ID).Update("created_at", 1000)
		db.Model(&entity.Note{}).Where("id = ?", recent.ID).Update("created_at", 2000)

		yes := true
		for _, id := range []int64{old.ID, recent.ID, foreign.ID} {
			if _, err := repo.Update(ctx, id, &entity.NotePatch{Archived: &yes}); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
		}

		notes, err := repo.FindAllByOwner(ctx, alice.ID, true)
		if err != nil {
			t.Fatalf("FindAllByOwner() error = %v", err)
		}
		if len(notes) != 2 {
			t.Fatalf("len = %d, want 2", len(notes))
		}
		if notes[0].ID != recent.ID || notes[1].ID != old.ID {
			t.Errorf("order = [%d %d], want [%d %d]", notes[0].ID, notes[1].ID, recent.ID, old.ID)
		}

		unarchived, err := repo.FindAllByOwner(ctx, alice.ID, false)
		if err != nil {
			t.Fatalf("FindAllByOwner() error = %v", err)
		}
		if len(unarchived) != 1 || unarchived[0].ID != active.ID {
			t.Errorf("unarchived = %v, want only note %d", unarchived, active.ID)
		}
	})

	t.Run("preloads categories", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		note := testutil.CreateNote(t, db, alice, "N1")
		work := testutil.CreateCategory(t, db, alice, "work")

		if _, err := repo.AddCategories(ctx, note.ID, alice.ID, []int64{work.ID}); err != nil {
			t.Fatalf("AddCategories() error = %v", err)
		}

		notes, err := repo.FindAllByOwner(ctx, alice.ID, false)
		if err != nil {
			t.Fatalf("FindAllByOwner() error = %v", err)
		}
		if len(notes) != 1 || len(notes[0].Categories) != 1 || notes[0].Categories[0].Name != "work" {
			t.Errorf("notes = %+v, want one note tagged work", notes)
		}
	})
}

func TestNoteRepository_AddCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("is all or nothing", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		bob := testutil.CreateUser(t, db, "bob")
		note := testutil.CreateNote(t, db, alice, "N1")
		c1 := testutil.CreateCategory(t, db, alice, "mine")
		c2 := testutil.CreateCategory(t, db, bob, "theirs")

		_, err := repo.AddCategories(ctx, note.ID, alice.ID, []int64{c1.ID, c2.ID})
		if !errors.Is(err, ErrCategoryNotOwned) {
			t.Fatalf("AddCategories() error = %v, want %v", err, ErrCategoryNotOwned)
		}
		if n := testutil.CountLinks(t, db, note.ID); n != 0 {
			t.Errorf("links = %d, want 0", n)
		}
	})

	t.Run("unknown category id", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		note := testutil.CreateNote(t, db, alice, "N1")

		_, err := repo.AddCategories(ctx, note.ID, alice.ID, []int64{777})
		if !errors.Is(err, ErrCategoryNotOwned) {
			t.Errorf("AddCategories() error = %v, want %v", err, ErrCategoryNotOwned)
		}
	})

	t.Run("note of another user", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		bob := testutil.CreateUser(t, db, "bob")
		note := testutil.CreateNote(t, db, alice, "N1")
		c := testutil.CreateCategory(t, db, bob, "theirs")

		_, err := repo.AddCategories(ctx, note.ID, bob.ID, []int64{c.ID})
		if !errors.Is(err, ErrNoteNotOwned) {
			t.Errorf("AddCategories() error = %v, want %v", err, ErrNoteNotOwned)
		}
	})

	t.Run("overlapping calls do not duplicate links", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		note := testutil.CreateNote(t, db, alice, "N1")
		c1 := testutil.CreateCategory(t, db, alice, "a")
		c2 := testutil.CreateCategory(t, db, alice, "b")
		c3 := testutil.CreateCategory(t, db, alice, "c")

		if _, err := repo.AddCategories(ctx, note.ID, alice.ID, []int64{c1.ID, c2.ID}); err != nil {
			t.Fatalf("first AddCategories() error = %v", err)
		}

		got, err := repo.AddCategories(ctx, note.ID, alice.ID, []int64{c2.ID, c3.ID, c2.ID})
		if err != nil {
			t.Fatalf("second AddCategories() error = %v", err)
		}
		if n := testutil.CountLinks(t, db, note.ID); n != 3 {
			t.Errorf("links = %d, want 3", n)
		}
		if want := []int64{c1.ID, c2.ID, c3.ID}; !equalIDs(categoryIDs(got), want) {
			t.Errorf("categories = %v, want %v", categoryIDs(got), want)
		}
	})
}

func TestNoteRepository_RemoveCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("removes exactly one association", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		note := testutil.CreateNote(t, db, alice, "N1")
		c1 := testutil.CreateCategory(t, db, alice, "one")
		c2 := testutil.CreateCategory(t, db, alice, "two")

		if _, err := repo.AddCategories(ctx, note.ID, alice.ID, []int64{c1.ID, c2.ID}); err != nil {
			t.Fatalf("AddCategories() error = %v", err)
		}

		got, err := repo.RemoveCategory(ctx, note.ID, alice.ID, c1.ID)
		if err != nil {
			t.Fatalf("RemoveCategory() error = %v", err)
		}
		if want := []int64{c2.ID}; !equalIDs(categoryIDs(got), want) {
			t.Errorf("categories = %v, want %v", categoryIDs(got), want)
		}
		if n := testutil.CountLinks(t, db, note.ID); n != 1 {
			t.Errorf("links = %d, want 1", n)
		}
	})

	t.Run("pair that is not associated", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		note := testutil.CreateNote(t, db, alice, "N1")
		c1 := testutil.CreateCategory(t, db, alice, "one")

		_, err := repo.RemoveCategory(ctx, note.ID, alice.ID, c1.ID)
		if !errors.Is(err, ErrCategoryNotLinked) {
			t.Errorf("RemoveCategory() error = %v, want %v", err, ErrCategoryNotLinked)
		}
	})

	t.Run("note of another user is left alone", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		repo := NewNoteRepository(db)
		alice := testutil.CreateUser(t, db, "alice")
		bob := testutil.CreateUser(t, db, "bob")
		note := testutil.CreateNote(t, db, alice, "N1")
		c1 := testutil.CreateCategory(t, db, alice, "one")

		if _, err := repo.AddCategories(ctx, note.ID, alice.ID, []int64{c1.ID}); err != nil {
			t.Fatalf("AddCategories() error = %v", err)
		}

		_, err := repo.RemoveCategory(ctx, note.ID, bob.ID, c1.ID)
		if !errors.Is(err, ErrCategoryNotLinked) {
			t.Errorf("RemoveCategory() error = %v, want %v", err, ErrCategoryNotLinked)
		}
		if n := testutil.CountLinks(t, db, note.ID); n != 1 {
			t.Errorf("links = %d, want 1", n)
		}
	})
}

func TestNoteRepository_FindAllByCategory(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewNoteRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	tagged := testutil.CreateNote(t, db, alice, "tagged")
	testutil.CreateNote(t, db, alice, "untagged")
	bobs := testutil.CreateNote(t, db, bob, "bobs")

	aliceWork := testutil.CreateCategory(t, db, alice, "work")
	bobWork := testutil.CreateCategory(t, db, bob, "work")

	if _, err := repo.AddCategories(ctx, tagged.ID, alice.ID, []int64{aliceWork.ID}); err != nil {
		t.Fatalf("AddCategories() error = %v", err)
	}
	if _, err := repo.AddCategories(ctx, bobs.ID, bob.ID, []int64{bobWork.ID}); err != nil {
		t.Fatalf("AddCategories() error = %v", err)
	}

	t.Run("exact name match scoped to owner", func(t *testing.T) {
		notes, err := repo.FindAllByCategory(ctx, alice.ID, "work")
		if err != nil {
			t.Fatalf("FindAllByCategory() error = %v", err)
		}
		if len(notes) != 1 || notes[0].ID != tagged.ID {
			t.Errorf("notes = %v, want only note %d", notes, tagged.ID)
		}
	})

	t.Run("no partial matches", func(t *testing.T) {
		notes, err := repo.FindAllByCategory(ctx, alice.ID, "wor")
		if err != nil {
			t.Fatalf("FindAllByCategory() error = %v", err)
		}
		if len(notes) != 0 {
			t.Errorf("len = %d, want 0", len(notes))
		}
	})
}

func TestNoteRepository_FindCategoriesForNote(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewNoteRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	note := testutil.CreateNote(t, db, alice, "N1")
	c1 := testutil.CreateCategory(t, db, alice, "zeta")
	c2 := testutil.CreateCategory(t, db, alice, "alpha")

	if _, err := repo.AddCategories(ctx, note.ID, alice.ID, []int64{c2.ID, c1.ID}); err != nil {
		t.Fatalf("AddCategories() error = %v", err)
	}

	t.Run("owner sees categories ordered by id", func(t *testing.T) {
		categories, err := repo.FindCategoriesForNote(ctx, note.ID, alice.ID)
		if err != nil {
			t.Fatalf("FindCategoriesForNote() error = %v", err)
		}
		if len(categories) != 2 || categories[0].ID != c1.ID || categories[1].ID != c2.ID {
			t.Errorf("categories = %v, want [%d %d]", categories, c1.ID, c2.ID)
		}
	})

	t.Run("other users see nothing", func(t *testing.T) {
		categories, err := repo.FindCategoriesForNote(ctx, note.ID, bob.ID)
		if err != nil {
			t.Fatalf("FindCategoriesForNote() error = %v", err)
		}
		if len(categories) != 0 {
			t.Errorf("len = %d, want 0", len(categories))
		}
	})
}
