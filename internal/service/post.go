// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes the database
//
// Handlers only know about HTTP. Services only know about business rules.
// Neither knows any SQL. The service receives repository INTERFACES, not the
// concrete sqlite types, so tests inject in-memory mocks and the SQLite
// implementation could be swapped without touching this package.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/portfolio-backend/internal/apperror"
	"github.com/sakif/portfolio-backend/internal/model"
	"github.com/sakif/portfolio-backend/internal/repository"
)

// PostService handles business logic for blog posts.
type PostService struct {
	repo   repository.PostRepository
	logger *slog.Logger
}

// NewPostService creates a new PostService. The caller decides which
// repository implementation to inject (SQLite in production, a mock in tests).
func NewPostService(repo repository.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{
		repo:   repo,
		logger: logger,
	}
}

// validate enforces the create/update contract: title, excerpt and content
// must be non-empty (whitespace doesn't count). Date, category, author and
// image are optional — the frontend renders sensible blanks for them.
//
// The wire message is the fixed string "Missing fields" for every violation;
// the admin UI keys on it, and a per-field message would leak nothing useful
// anyway. The offending field still travels in AppError.Field for logs.
func validate(post *model.Post) error {
	for field, value := range map[string]string{
		"title":   post.Title,
		"excerpt": post.Excerpt,
		"content": post.Content,
	} {
		if strings.TrimSpace(value) == "" {
			return apperror.ValidationFailed(field, "Missing fields")
		}
	}
	return nil
}

// Create validates and saves a new post. On success the returned post carries
// the freshly assigned id, which is strictly greater than every id assigned
// before it.
func (s *PostService) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if err := validate(&post); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &post); err != nil {
		s.logger.Error("failed to create post",
			slog.String("title", post.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.Int64("id", post.ID),
		slog.String("title", post.Title),
	)

	return &post, nil
}

// List returns every post, newest first. No pagination: a personal blog has
// tens of entries, and the frontend filters by category client-side.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return posts, nil
}

// GetByID returns the post with the given id, or apperror.ErrNotFound.
func (s *PostService) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces all mutable fields of the post with the given id and
// returns the updated post.
//
// A missing id is apperror.ErrNotFound → 404: an update has to hand back the
// entity, so it cannot pretend a missing row worked. Delete keeps its
// idempotent contract (see Delete).
func (s *PostService) Update(ctx context.Context, id int64, fields model.Post) (*model.Post, error) {
	if err := validate(&fields); err != nil {
		return nil, err
	}

	fields.ID = id
	if err := s.repo.Update(ctx, &fields); err != nil {
		return nil, err
	}

	s.logger.Info("post updated",
		slog.Int64("id", id),
		slog.String("title", fields.Title),
	)

	return &fields, nil
}

// Delete removes the post with the given id. Deleting a post that doesn't
// exist succeeds — HTTP DELETE is idempotent, and the caller ends up in the
// state they asked for either way.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete post",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting post: %w", err)
	}

	s.logger.Info("post deleted", slog.Int64("id", id))
	return nil
}
