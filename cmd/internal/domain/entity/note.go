package entity

type Note struct {
	ID        int64  `gorm:"primaryKey"`
	Title     string `gorm:"not null;uniqueIndex:idx_note_title_user"`
	Content   string `gorm:"not null"`
	Archived  bool   `gorm:"not null;default:false;index"`
	UserID    int64  `gorm:"not null;uniqueIndex:idx_note_title_user;index"` // References: users(id)
	CreatedAt int64  `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:milli"`

	// Relations
	User       User       `gorm:"foreignKey:UserID;references:ID"`
	Categories []Category `gorm:"many2many:note_categories"`
}

// NotePatch carries a partial note update. Nil fields are left untouched.
type NotePatch struct {
	Title    *string
	Content  *string
	Archived *bool
}

// Empty reports whether the patch would not change anything.
func (p *NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Archived == nil
}

// Columns converts the patch into the column map used by gorm's Updates,
// so that zero values (like archived=false) are still written.
func (p *NotePatch) Columns() map[string]any {
	cols := make(map[string]any, 3)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.Archived != nil {
		cols["archived"] = *p.Archived
	}
	return cols
}
