package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition_portal_backend/internals/constants"
)

// UserModel represents the users table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	StudentID *string   `gorm:"size:50;uniqueIndex" json:"student_id,omitempty"`
	Phone     *string   `gorm:"size:30" json:"phone,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	RealName  *string   `gorm:"size:100" json:"real_name,omitempty"`
	Avatar    *string   `gorm:"size:512" json:"avatar,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleUser
	}
	if u.Status == "" {
		u.Status = constants.UserStatusActive
	}
	return nil
}

func (u *UserModel) IsActive() bool {
	return u.Status == constants.UserStatusActive
}

// Summary is the shape embedded in other resources (creator, registrant).
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	RealName  *string   `json:"real_name,omitempty"`
	StudentID *string   `json:"student_id,omitempty"`
}

func (u *UserModel) Summary() Summary {
	return Summary{
		ID:        u.ID,
		Username:  u.Username,
		RealName:  u.RealName,
		StudentID: u.StudentID,
	}
}
