package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gimelloc/ignite-gym/internal/domain"
	"github.com/gimelloc/ignite-gym/pkg/log"
)

// sessionRowID is the fixed primary key of the single session row.
const sessionRowID = 1

// GormStore persists the session in a local SQLite file, the client
// side equivalent of the app's on-device storage. The in-memory copy
// is guarded so Current/Token stay cheap.
type GormStore struct {
	db *gorm.DB

	mu           sync.RWMutex
	user         *domain.User
	accessToken  string
	refreshToken string
}

// NewGormStore opens (or creates) the session database at dbPath and
// loads any persisted session. A persisted session whose access token
// has expired is discarded, leaving the store signed out.
func NewGormStore(dbPath string) (*GormStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if err := db.AutoMigrate(&sessionModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}

	s := &GormStore{db: db}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *GormStore) load() error {
	var model sessionModel
	result := s.db.First(&model, "id = ?", sessionRowID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load session: %w", result.Error)
	}

	if tokenExpired(model.AccessToken, time.Now()) {
		l := log.L()
		l.Info().Str(log.FieldUserID, model.UserID).Msg("persisted session expired, signing out")
		return s.Clear()
	}

	user := model.toUser()
	s.mu.Lock()
	s.user = &user
	s.accessToken = model.AccessToken
	s.refreshToken = model.RefreshToken
	s.mu.Unlock()
	return nil
}

// Current returns the signed-in user's profile.
func (s *GormStore) Current() (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, ErrNoSession
	}
	return *s.user, nil
}

// Token returns the current access token, or "" when signed out.
func (s *GormStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Save persists a fresh session after sign-in.
func (s *GormStore) Save(user domain.User, token, refreshToken string) error {
	model := sessionModel{
		ID:           sessionRowID,
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Avatar:       user.Avatar,
		AccessToken:  token,
		RefreshToken: refreshToken,
	}
	if err := s.db.Save(&model).Error; err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.accessToken = token
	s.refreshToken = refreshToken
	s.mu.Unlock()
	return nil
}

// CommitProfile persists an updated profile, keeping the tokens.
func (s *GormStore) CommitProfile(user domain.User) error {
	s.mu.RLock()
	signedIn := s.user != nil
	s.mu.RUnlock()
	if !signedIn {
		return ErrNoSession
	}

	result := s.db.Model(&sessionModel{}).
		Where("id = ?", sessionRowID).
		Updates(map[string]interface{}{
			"name":   user.Name,
			"avatar": user.Avatar,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to persist profile: %w", result.Error)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Clear removes the persisted session.
func (s *GormStore) Clear() error {
	if err := s.db.Delete(&sessionModel{}, "id = ?", sessionRowID).Error; err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.mu.Lock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()
	return nil
}
