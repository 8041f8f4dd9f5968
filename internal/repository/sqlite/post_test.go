package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sakif/portfolio-backend/internal/apperror"
	"github.com/sakif/portfolio-backend/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" creates a fresh database that exists only during the test —
// fast, isolated, destroyed when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestPost inserts a post and fails the test on error.
func createTestPost(t *testing.T, db *DB, title string) *model.Post {
	t.Helper()
	post := &model.Post{
		Title:    title,
		Date:     "Aug 2026",
		Category: "threejs",
		Excerpt:  "an excerpt",
		Content:  "some content",
		Author:   "sakif",
	}
	if err := db.Create(context.Background(), post); err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreate(t *testing.T) {
	db := newTestDB(t)

	post := &model.Post{
		Title:   "First post",
		Excerpt: "hello",
		Content: "world",
	}

	if err := db.Create(context.Background(), post); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Verify the post was modified in-place (pointer receiver!)
	if post.ID == 0 {
		t.Error("Create() did not set post.ID")
	}
}

func TestCreate_IDsStrictlyIncrease(t *testing.T) {
	db := newTestDB(t)

	var lastID int64
	for i := 0; i < 5; i++ {
		post := createTestPost(t, db, fmt.Sprintf("post %d", i))
		if post.ID <= lastID {
			t.Fatalf("post %d got id %d, not greater than previous id %d", i, post.ID, lastID)
		}
		lastID = post.ID
	}
}

func TestCreate_IDsNotReusedAfterDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := createTestPost(t, db, "doomed")
	if err := db.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	second := createTestPost(t, db, "survivor")
	if second.ID <= first.ID {
		t.Errorf("id %d was reused after deleting id %d (AUTOINCREMENT should prevent this)", second.ID, first.ID)
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestGetByID(t *testing.T) {
	db := newTestDB(t)

	original := createTestPost(t, db, "lookup me")

	found, err := db.GetByID(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.Title != original.Title {
		t.Errorf("Title = %q, want %q", found.Title, original.Title)
	}
	if found.Excerpt != original.Excerpt {
		t.Errorf("Excerpt = %q, want %q", found.Excerpt, original.Excerpt)
	}
	if found.Content != original.Content {
		t.Errorf("Content = %q, want %q", found.Content, original.Content)
	}
	if found.Author != original.Author {
		t.Errorf("Author = %q, want %q", found.Author, original.Author)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), 9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// LIST TESTS
// =========================================================================

func TestList_Empty(t *testing.T) {
	db := newTestDB(t)

	posts, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if posts == nil {
		t.Error("List() returned nil, want empty slice (serializes as [] not null)")
	}
	if len(posts) != 0 {
		t.Errorf("List() returned %d posts, want 0", len(posts))
	}
}

func TestList_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 3; i++ {
		createTestPost(t, db, fmt.Sprintf("post %d", i))
	}

	posts, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("List() returned %d posts, want 3", len(posts))
	}

	// Newest insertion first = descending ids
	for i := 1; i < len(posts); i++ {
		if posts[i].ID >= posts[i-1].ID {
			t.Errorf("posts out of order: posts[%d].ID=%d >= posts[%d].ID=%d",
				i, posts[i].ID, i-1, posts[i-1].ID)
		}
	}
	if posts[0].Title != "post 2" {
		t.Errorf("first post = %q, want the most recently created", posts[0].Title)
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestUpdate_ReplacesAllFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	post := createTestPost(t, db, "before")

	post.Title = "after"
	post.Date = "Sep 2026"
	post.Category = "webgpu"
	post.Excerpt = "new excerpt"
	post.Content = "new content"
	post.Author = "someone else"
	post.Image = "/uploads/new.jpg"

	if err := db.Update(ctx, post); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := db.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Title != "after" || found.Date != "Sep 2026" || found.Category != "webgpu" ||
		found.Excerpt != "new excerpt" || found.Content != "new content" ||
		found.Author != "someone else" || found.Image != "/uploads/new.jpg" {
		t.Errorf("Update() did not replace all fields: %+v", found)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Update(context.Background(), &model.Post{
		ID:      9999,
		Title:   "ghost",
		Excerpt: "x",
		Content: "y",
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	post := createTestPost(t, db, "doomed")

	if err := db.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := db.GetByID(ctx, post.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete: error = %v, want ErrNotFound", err)
	}
}

func TestDelete_MissingIDIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	// Deleting something that never existed succeeds — the caller ends up in
	// the requested state either way.
	if err := db.Delete(context.Background(), 9999); err != nil {
		t.Errorf("Delete() of a missing id: error = %v, want nil", err)
	}
}
