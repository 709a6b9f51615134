package service

import (
	"context"
	"errors"
	"notekeeper/cmd/internal/contract"
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/domain/policy"
	"notekeeper/cmd/internal/domain/sqlite/repository"
	"notekeeper/cmd/internal/utils"
	"notekeeper/cmd/internal/utils/apierror"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, id int64, patch *entity.NotePatch) (*entity.Note, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*entity.Note, error)
	FindAllByOwner(ctx context.Context, userID int64, archived bool) ([]*entity.Note, error)
	FindAllByCategory(ctx context.Context, userID int64, categoryName string) ([]*entity.Note, error)
	FindCategoriesForNote(ctx context.Context, noteID, userID int64) ([]*entity.Category, error)
	AddCategories(ctx context.Context, noteID, userID int64, categoryIDs []int64) (*entity.Note, error)
	RemoveCategory(ctx context.Context, noteID, userID, categoryID int64) (*entity.Note, error)
}

type DefaultNoteService struct {
	NoteRepo   NoteRepository
	NotePolicy *policy.NotePolicy
	Validate   *validator.Validate
}

func NewNoteService(noteRepo NoteRepository, notePolicy *policy.NotePolicy, validate *validator.Validate) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo:   noteRepo,
		NotePolicy: notePolicy,
		Validate:   validate,
	}
}

func (n *DefaultNoteService) GetNotes(ctx context.Context, actor *entity.User, archived bool) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindAllByOwner(ctx, actor.ID, archived)
	if err != nil {
		log.Errorf("failed to fetch notes of user %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponses(notes), nil
}

func (n *DefaultNoteService) GetNotesByCategory(ctx context.Context, actor *entity.User, categoryName string) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	categoryName = strings.TrimSpace(categoryName)
	if categoryName == "" {
		return nil, apierror.MissingCategoryNameError
	}

	notes, err := n.NoteRepo.FindAllByCategory(ctx, actor.ID, categoryName)
	if err != nil {
		log.Errorf("failed to fetch notes of user %d by category %q: %v", actor.ID, categoryName, err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponses(notes), nil
}

func (n *DefaultNoteService) GetNoteByID(ctx context.Context, actor *entity.User, noteID int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchNote(ctx, noteID)
	if apierr != nil {
		return nil, apierr
	}

	if perr := n.NotePolicy.CanSee(note, actor); perr != nil {
		return nil, perr
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) CreateNote(ctx context.Context, actor *entity.User, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	req.Title = strings.TrimSpace(req.Title)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note := &entity.Note{
		Title:   req.Title,
		Content: req.Content,
		UserID:  actor.ID,
	}

	if err := n.NoteRepo.Create(ctx, note); err != nil {
		return nil, mapStoreError("create note", err)
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) UpdateNote(ctx context.Context, actor *entity.User, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}

	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, apierr := n.fetchNote(ctx, noteID)
	if apierr != nil {
		return nil, apierr
	}

	if perr := n.NotePolicy.CanUpdate(note, actor); perr != nil {
		return nil, perr
	}

	patch := &entity.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		Archived: req.Archived,
	}

	updated, err := n.NoteRepo.Update(ctx, noteID, patch)
	if err != nil {
		return nil, mapStoreError("update note", err)
	}
	return toNoteResponse(updated), nil
}

func (n *DefaultNoteService) DeleteNote(ctx context.Context, actor *entity.User, noteID int64) apierror.ErrorResponse {
	note, apierr := n.fetchNote(ctx, noteID)
	if apierr != nil {
		return apierr
	}

	if perr := n.NotePolicy.CanDelete(note, actor); perr != nil {
		return perr
	}

	if err := n.NoteRepo.Delete(ctx, noteID); err != nil {
		return mapStoreError("delete note", err)
	}
	return nil
}

func (n *DefaultNoteService) GetNoteCategories(ctx context.Context, actor *entity.User, noteID int64) ([]*contract.CategoryRef, apierror.ErrorResponse) {
	note, apierr := n.fetchNote(ctx, noteID)
	if apierr != nil {
		return nil, apierr
	}

	if perr := n.NotePolicy.CanSee(note, actor); perr != nil {
		return nil, perr
	}

	categories, err := n.NoteRepo.FindCategoriesForNote(ctx, noteID, actor.ID)
	if err != nil {
		return nil, mapStoreError("list note categories", err)
	}

	resp := make([]*contract.CategoryRef, len(categories))
	for i, c := range categories {
		resp[i] = &contract.CategoryRef{ID: c.ID, Name: c.Name}
	}
	return resp, nil
}

func (n *DefaultNoteService) AddCategories(ctx context.Context, actor *entity.User, noteID int64, req *contract.AddCategoriesRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note, err := n.NoteRepo.AddCategories(ctx, noteID, actor.ID, req.CategoryIDs)
	if err != nil {
		return nil, mapStoreError("add categories", err)
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) RemoveCategory(ctx context.Context, actor *entity.User, noteID, categoryID int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, err := n.NoteRepo.RemoveCategory(ctx, noteID, actor.ID, categoryID)
	if err != nil {
		return nil, mapStoreError("remove category", err)
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) fetchNote(ctx context.Context, noteID int64) (*entity.Note, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindByID(ctx, noteID)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", noteID, err)
		return nil, apierror.InternalServerError
	}
	return note, nil
}

// mapStoreError translates repository errors into API errors.
// Anything unknown is logged and reported as a 500.
func mapStoreError(op string, err error) apierror.ErrorResponse {
	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		return apierror.NoteNotFoundError
	case errors.Is(err, repository.ErrDuplicateTitle):
		return apierror.DuplicateNoteTitleError
	case errors.Is(err, repository.ErrNoteNotOwned):
		return apierror.NoteNotOwnedError
	case errors.Is(err, repository.ErrCategoryNotOwned):
		return apierror.CategoryNotOwnedError
	case errors.Is(err, repository.ErrCategoryNotLinked):
		return apierror.CategoryNotLinkedError
	case errors.Is(err, repository.ErrDuplicateCategory):
		return apierror.DuplicateCategoryError
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apierror.UserAlreadyExistsError
	default:
		log.Errorf("failed to %s: %v", op, err)
		return apierror.InternalServerError
	}
}

func toNoteResponses(notes []*entity.Note) []*contract.NoteResponse {
	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp
}

// toNoteResponse flattens the note's associations into plain {id, name} pairs.
func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	categories := make([]*contract.CategoryRef, len(note.Categories))
	for i, c := range note.Categories {
		categories[i] = &contract.CategoryRef{ID: c.ID, Name: c.Name}
	}

	return &contract.NoteResponse{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		Archived:   note.Archived,
		UserID:     note.UserID,
		Categories: categories,
		CreatedAt:  utils.FormatEpoch(note.CreatedAt),
		UpdatedAt:  utils.FormatEpoch(note.UpdatedAt),
	}
}
