package models

import "fmt"

// BlogForm holds the values typed into the new blog form
type BlogForm struct {
	Title  string
	Author string
	URL    string
}

// Validate checks the fields the backend rejects when missing
func (f BlogForm) Validate() error {
	if f.Title == "" {
		return ErrEmptyTitle
	}
	if f.URL == "" {
		return ErrEmptyURL
	}
	return nil
}

// Post is a blog entry as rendered by the application. The suite never stores
// posts; it only describes what the UI is expected to show.
type Post struct {
	Title   string
	Author  string
	URL     string
	Likes   int
	Creator string
}

// LikesLabel returns the like counter text shown in the detail view
func LikesLabel(n int) string {
	return fmt.Sprintf("Likes: %d", n)
}
