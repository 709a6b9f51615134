package entity

// User is the owner of notes and categories.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	Username     string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    int64  `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt    int64  `gorm:"not null;autoUpdateTime:milli"`
}
