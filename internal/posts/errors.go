package posts

import "errors"

var (
	// ErrInvalidPost indicates a record missing its id or title.
	ErrInvalidPost = errors.New("posts: invalid post")

	// ErrInvalidDate indicates a date none of the accepted layouts parse.
	ErrInvalidDate = errors.New("posts: unparseable date")
)
