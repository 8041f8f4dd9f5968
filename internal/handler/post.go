package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/sakif/portfolio-backend/internal/apperror"
	"github.com/sakif/portfolio-backend/internal/model"
	"github.com/sakif/portfolio-backend/internal/render"
	"github.com/sakif/portfolio-backend/internal/service"
	"github.com/sakif/portfolio-backend/internal/upload"
)

// maxUploadBytes bounds the in-memory portion of a multipart parse. Post
// images are photos of a few MB; anything past 10MB is someone being rude.
const maxUploadBytes = 10 << 20

// PostHandler manages CRUD operations for blog posts.
type PostHandler struct {
	posts   *service.PostService
	uploads *upload.Store
	logger  *slog.Logger
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(posts *service.PostService, uploads *upload.Store, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, uploads: uploads, logger: logger}
}

// HandleList returns all posts, newest first.
//
// HTTP: GET /api/posts
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// postWithHTML is the single-post response: the post plus its markdown
// content rendered to HTML, so the public blog page doesn't need a
// client-side markdown parser.
type postWithHTML struct {
	model.Post
	ContentHTML string `json:"contentHtml"`
}

// HandleGetByID returns one post with rendered content.
//
// HTTP: GET /api/posts/{id}
func (h *PostHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	html, err := render.Markdown(post.Content)
	if err != nil {
		h.logger.Error("failed to render post content",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postWithHTML{Post: *post, ContentHTML: html})
}

// HandleCreate saves a new post.
//
// HTTP: POST /api/posts  (bearer auth)
// BODY: JSON post fields, or multipart/form-data with the same fields plus
// an optional "image" file part.
//
//	201 Post                          created
//	400 {"message":"Missing fields"}  title/excerpt/content empty
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	fields, err := h.decodePost(r)
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), fields)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// HandleUpdate replaces all fields of an existing post.
//
// HTTP: PUT /api/posts/{id}  (bearer auth)
//
//	200 Post   updated
//	404        no post with that id
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	fields, err := h.decodePost(r)
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Update(r.Context(), id, fields)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleDelete removes a post.
//
// HTTP: DELETE /api/posts/{id}  (bearer auth)
//
// Always 200 {"success":true}, whether or not the id existed — delete is
// idempotent. The referenced image, if any, is left in the uploads dir.
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// postID parses the {id} URL parameter.
func postID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed("id", "Invalid post id")
	}
	return id, nil
}

// decodePost reads post fields from either a JSON body or a multipart form.
//
// The admin UI sends multipart/form-data when an image accompanies the post
// and plain JSON otherwise, so both shapes land here. For multipart requests
// with an "image" part, the file is stored and its public path replaces
// whatever the image field said.
func (h *PostHandler) decodePost(r *http.Request) (model.Post, error) {
	var post model.Post

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			h.logger.Warn("invalid post JSON", slog.String("error", err.Error()))
			return post, apperror.ValidationFailed("body", "Missing fields")
		}
		return post, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.logger.Warn("invalid multipart form", slog.String("error", err.Error()))
		return post, apperror.ValidationFailed("body", "Missing fields")
	}

	post.Title = r.FormValue("title")
	post.Date = r.FormValue("date")
	post.Category = r.FormValue("category")
	post.Excerpt = r.FormValue("excerpt")
	post.Content = r.FormValue("content")
	post.Author = r.FormValue("author")
	post.Image = r.FormValue("image")

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// No file part — keep whatever path the image field carried.
	case err != nil:
		h.logger.Warn("invalid image upload", slog.String("error", err.Error()))
		return post, apperror.ValidationFailed("image", "Missing fields")
	default:
		defer file.Close()
		path, err := h.uploads.Save(file, header)
		if err != nil {
			h.logger.Error("failed to store image", slog.String("error", err.Error()))
			return post, err
		}
		post.Image = path
	}

	return post, nil
}
