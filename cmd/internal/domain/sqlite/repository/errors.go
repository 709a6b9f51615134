package repository

import "errors"

// Store errors returned by the repositories. Callers match them with errors.Is.
var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrDuplicateTitle    = errors.New("note with this title already exists")
	ErrNoteNotOwned      = errors.New("note does not exist or does not belong to the user")
	ErrCategoryNotOwned  = errors.New("one or more categories do not belong to the user")
	ErrCategoryNotLinked = errors.New("category is not associated with this note")
	ErrDuplicateCategory = errors.New("category with this name already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)
