package entity

type Category struct {
	ID     int64  `gorm:"primaryKey"`
	Name   string `gorm:"not null;uniqueIndex:idx_category_name_user"`
	UserID int64  `gorm:"not null;uniqueIndex:idx_category_name_user;index"` // References: users(id)

	// Relations
	User User `gorm:"foreignKey:UserID;references:ID"`
}

// NoteCategory is the join row between a note and one of its categories.
// Both sides must belong to the same user.
type NoteCategory struct {
	NoteID     int64 `gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (NoteCategory) TableName() string {
	return "note_categories"
}
