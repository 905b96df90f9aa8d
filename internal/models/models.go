package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string    `gorm:"column:password;not null"  json:"-"`
	Name         string    `gorm:"not null"                  json:"name"`
	Role         string    `gorm:"not null;default:user"     json:"role"`
	CreatedAt    time.Time `                                 json:"createdAt"`
	UpdatedAt    time.Time `                                 json:"updatedAt"`
}

// PublicUser is the projection of a User that is safe to hand to clients.
type PublicUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

type Sweet struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"            json:"id"`
	Name        string    `gorm:"not null"                            json:"name"`
	Category    string    `gorm:"not null;index"                      json:"category"`
	Price       float64   `gorm:"type:decimal(10,2);not null"         json:"price"`
	Quantity    int       `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Description *string   `gorm:"type:text"                           json:"description"`
	ImageURL    *string   `gorm:"column:image_url"                    json:"imageUrl"`
	CreatedAt   time.Time `gorm:"index"                               json:"createdAt"`
	UpdatedAt   time.Time `                                           json:"updatedAt"`

	// Lower-cased copies of Name and Category for case-insensitive search.
	// SQLite's LOWER only folds ASCII, so folding happens in Go instead.
	NameFolded     string `gorm:"not null;default:'';index" json:"-"`
	CategoryFolded string `gorm:"not null;default:'';index" json:"-"`
}

// MaxPrice is the largest value a decimal(10,2) price column holds.
const MaxPrice = 99999999.99

func Fold(s string) string {
	return strings.ToLower(s)
}

func (s *Sweet) BeforeSave(*gorm.DB) error {
	s.NameFolded = Fold(s.Name)
	s.CategoryFolded = Fold(s.Category)
	return nil
}

func All() []any {
	return []any{&User{}, &Sweet{}}
}
