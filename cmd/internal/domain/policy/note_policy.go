package policy

import (
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/utils/apierror"
)

// NotePolicy encapsulates all business rules for note manipulation.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
type NotePolicy struct{}

func NewNotePolicy() *NotePolicy {
	return &NotePolicy{}
}

// CanSee hides missing notes and notes of other users behind the same 404.
func (p *NotePolicy) CanSee(note *entity.Note, actor *entity.User) apierror.ErrorResponse {
	if note == nil || note.UserID != actor.ID {
		return apierror.NoteNotFoundError
	}
	return nil
}

func (p *NotePolicy) CanUpdate(note *entity.Note, actor *entity.User) apierror.ErrorResponse {
	return p.checkOwner(note, actor)
}

func (p *NotePolicy) CanDelete(note *entity.Note, actor *entity.User) apierror.ErrorResponse {
	return p.checkOwner(note, actor)
}

// checkOwner tells a missing note (404) apart from somebody else's note (403).
func (p *NotePolicy) checkOwner(note *entity.Note, actor *entity.User) apierror.ErrorResponse {
	if note == nil {
		return apierror.NoteNotFoundError
	}

	if note.UserID != actor.ID {
		return apierror.NoteForbiddenError
	}
	return nil
}
