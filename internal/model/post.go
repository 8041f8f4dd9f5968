// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Post represents a blog entry on the portfolio site.
// The `json:"..."` tags tell Go's encoding/json package how to serialize/deserialize
// this struct to/from JSON — the frontend consumes these field names directly.
//
// WHY Date string (not time.Time)?
// The admin UI sends free-form dates like "Jan 2026" or "2026-08-29" and the
// frontend displays them verbatim. Parsing them into time.Time would reject
// values the site has always accepted, so the date stays an opaque string.
type Post struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Image    string `json:"image,omitempty"` // Path under /uploads, empty when the post has no image
}
