package handler

import (
	"context"
	"net/http"
	"notekeeper/cmd/internal/contract"
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/utils"
	"notekeeper/cmd/internal/utils/apierror"
	"strconv"

	"github.com/labstack/echo/v4"
)

// NoteService receives the acting *entity.User so ownership can be checked
// without hitting the users table again.
type NoteService interface {
	GetNotes(ctx context.Context, actor *entity.User, archived bool) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetNotesByCategory(ctx context.Context, actor *entity.User, categoryName string) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetNoteByID(ctx context.Context, actor *entity.User, noteID int64) (*contract.NoteResponse, apierror.ErrorResponse)
	CreateNote(ctx context.Context, actor *entity.User, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	UpdateNote(ctx context.Context, actor *entity.User, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	DeleteNote(ctx context.Context, actor *entity.User, noteID int64) apierror.ErrorResponse
	GetNoteCategories(ctx context.Context, actor *entity.User, noteID int64) ([]*contract.CategoryRef, apierror.ErrorResponse)
	AddCategories(ctx context.Context, actor *entity.User, noteID int64, req *contract.AddCategoriesRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	RemoveCategory(ctx context.Context, actor *entity.User, noteID, categoryID int64) (*contract.NoteResponse, apierror.ErrorResponse)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

// GetNotes lists the caller's notes. With ?category=<name> it lists the notes
// tagged with that category, otherwise it filters on ?archived=true.
func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	ctx := c.Request().Context()
	var (
		notes  []*contract.NoteResponse
		apierr apierror.ErrorResponse
	)

	if c.QueryParams().Has("category") {
		notes, apierr = n.NoteService.GetNotesByCategory(ctx, user, c.QueryParam("category"))
	} else {
		notes, apierr = n.NoteService.GetNotes(ctx, user, c.QueryParam("archived") == "true")
	}

	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, notes)
}

func (n *DefaultNoteRoute) GetNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := parseID(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	note, apierr := n.NoteService.GetNoteByID(c.Request().Context(), user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.CreateNote(c.Request().Context(), user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, note)
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := parseID(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.UpdateNote(c.Request().Context(), user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := parseID(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	if apierr := n.NoteService.DeleteNote(c.Request().Context(), user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (n *DefaultNoteRoute) GetNoteCategories(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := parseID(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	categories, apierr := n.NoteService.GetNoteCategories(c.Request().Context(), user, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, categories)
}

func (n *DefaultNoteRoute) AddCategories(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := parseID(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.AddCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.AddCategories(c.Request().Context(), user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) RemoveCategory(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := parseID(c, "id")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	categoryID, perr := parseID(c, "categoryId")
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	note, apierr := n.NoteService.RemoveCategory(c.Request().Context(), user, id, categoryID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (int64, *apierror.APIError) {
	raw := c.Param(name)
	if raw == "" {
		return 0, apierror.NewMissingParamError(name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.NewInvalidParamTypeError(name, "positive int64")
	}
	return id, nil
}
