package handler

import (
	"context"
	"net/http"
	"notekeeper/cmd/internal/contract"
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/utils"
	"notekeeper/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type CategoryService interface {
	GetCategories(ctx context.Context, actor *entity.User) ([]*contract.CategoryResponse, apierror.ErrorResponse)
	CreateCategory(ctx context.Context, actor *entity.User, req *contract.CreateCategoryRequest) (*contract.CategoryResponse, apierror.ErrorResponse)
}

type DefaultCategoryRoute struct {
	CategoryService CategoryService
}

func NewCategoryDefault(categoryService CategoryService) *DefaultCategoryRoute {
	return &DefaultCategoryRoute{CategoryService: categoryService}
}

func (r *DefaultCategoryRoute) GetCategories(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	categories, apierr := r.CategoryService.GetCategories(c.Request().Context(), user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, categories)
}

func (r *DefaultCategoryRoute) CreateCategory(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	category, apierr := r.CategoryService.CreateCategory(c.Request().Context(), user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, category)
}
