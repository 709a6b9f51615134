package contract

type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type NoteResponse struct {
	ID         int64          `json:"id"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Archived   bool           `json:"archived"`
	UserID     int64          `json:"user_id"`
	Categories []*CategoryRef `json:"categories"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required,max=1000000"`
}

// UpdateNoteRequest is a partial update: omitted fields are left unchanged.
type UpdateNoteRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content  *string `json:"content" validate:"omitempty,min=1,max=1000000"`
	Archived *bool   `json:"archived"`
}

type AddCategoriesRequest struct {
	CategoryIDs []int64 `json:"categoryIds" validate:"required,min=1,max=100,dive,gt=0"`
}
