package handler

import (
	"errors"
	"unicode/utf8"

	"agora/internal/app/forum"
	"agora/internal/pkg/errs"
)

const (
	MaxTopicNameLength   = 200
	MaxRoomNameLength    = 200
	MaxDescriptionLength = 2000
	MaxMessageLength     = 5000
	MaxBioLength         = 500
)

// forumError maps a forum store error to its client-facing code.
// notFoundCode names which resource was missing for reads.
func forumError(err error, notFoundCode int) *errs.CustomError {
	switch {
	case errors.Is(err, forum.ErrNotAllowed):
		return errs.NewError(errs.ErrNotAllowed)
	case errors.Is(err, forum.ErrNotFound):
		return errs.NewError(notFoundCode)
	case errors.Is(err, forum.ErrEmailTaken):
		return errs.NewError(errs.ErrEmailAlreadyExists)
	default:
		return errs.NewError(errs.ErrUnknown, err)
	}
}

// lengthBetween reports whether s has between lo and hi runes, inclusive.
func lengthBetween(s string, lo, hi int) bool {
	n := utf8.RuneCountInString(s)
	return n >= lo && n <= hi
}
