package session

import (
	"time"

	"github.com/gimelloc/ignite-gym/internal/domain"
)

// sessionModel is the GORM model for the single-row session table.
type sessionModel struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       string    `gorm:"type:varchar(36)"`
	Name         string    `gorm:"type:varchar(100)"`
	Email        string    `gorm:"type:varchar(255)"`
	Avatar       string    `gorm:"type:varchar(255)"`
	AccessToken  string    `gorm:"type:text"`
	RefreshToken string    `gorm:"type:text"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for sessionModel.
func (sessionModel) TableName() string {
	return "session"
}

func (m *sessionModel) toUser() domain.User {
	return domain.User{
		ID:     m.UserID,
		Name:   m.Name,
		Email:  m.Email,
		Avatar: m.Avatar,
	}
}
