package service

import (
	"context"
	"notekeeper/cmd/internal/contract"
	"notekeeper/cmd/internal/domain/entity"
	"notekeeper/cmd/internal/utils"
	"notekeeper/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindAllByOwner(ctx context.Context, userID int64) ([]*entity.Category, error)
}

type DefaultCategoryService struct {
	CategoryRepo CategoryRepository
	Validate     *validator.Validate
}

func NewCategoryService(categoryRepo CategoryRepository, validate *validator.Validate) *DefaultCategoryService {
	return &DefaultCategoryService{
		CategoryRepo: categoryRepo,
		Validate:     validate,
	}
}

func (s *DefaultCategoryService) GetCategories(ctx context.Context, actor *entity.User) ([]*contract.CategoryResponse, apierror.ErrorResponse) {
	categories, err := s.CategoryRepo.FindAllByOwner(ctx, actor.ID)
	if err != nil {
		log.Errorf("failed to fetch categories of user %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}
	return resp, nil
}

func (s *DefaultCategoryService) CreateCategory(ctx context.Context, actor *entity.User, req *contract.CreateCategoryRequest) (*contract.CategoryResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	category := &entity.Category{
		Name:   req.Name,
		UserID: actor.ID,
	}

	if err := s.CategoryRepo.Create(ctx, category); err != nil {
		return nil, mapStoreError("create category", err)
	}
	return toCategoryResponse(category), nil
}

func toCategoryResponse(c *entity.Category) *contract.CategoryResponse {
	return &contract.CategoryResponse{
		ID:     c.ID,
		Name:   c.Name,
		UserID: c.UserID,
	}
}
