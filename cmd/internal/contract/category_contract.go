package contract

type CategoryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID int64  `json:"user_id"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}
