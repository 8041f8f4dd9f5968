// Package repository declares the storage interfaces the service layer
// depends on. The concrete SQLite implementation lives in repository/sqlite;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/portfolio-backend/internal/model"
)

// PostRepository is the storage contract for blog posts.
//
// List returns every post, newest insertion first. The blog is a personal
// site with a handful of entries — category filtering happens client-side and
// pagination would be dead weight, so there are deliberately no list options.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository is the storage contract for admin accounts.
//
// SeedAdmin inserts the "admin" row with the given bcrypt hash if and only if
// no admin row exists yet; it reports whether a row was created. The API
// exposes no user mutation endpoints — UpdatePassword exists solely for the
// operator password-reset CLI in cmd/admin.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	SeedAdmin(ctx context.Context, passwordHash string) (bool, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}
