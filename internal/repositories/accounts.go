package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"farm-advisor/internal/models"
)

// AccountStore is the narrow persistence interface for users and the
// append-only activity log.
type AccountStore interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	AppendActivity(name, email, phone, action string) error
	ListActivity(limit int) ([]models.ActivityEntry, error)
}

// SQLiteAccountStore keeps accounts in an embedded SQLite database.
type SQLiteAccountStore struct {
	db *gorm.DB
}

// NewSQLiteAccountStore opens (or creates) the database at path and migrates
// the schema. Use ":memory:" for tests.
func NewSQLiteAccountStore(path string) (*SQLiteAccountStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open account database")
	}

	if err := db.AutoMigrate(&models.User{}, &models.ActivityEntry{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate account schema")
	}

	return &SQLiteAccountStore{db: db}, nil
}

// CreateUser inserts the user, failing with models.ErrDuplicateAccount when
// the email is already registered.
func (s *SQLiteAccountStore) CreateUser(user *models.User) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check existing account")
	}
	if count > 0 {
		return models.ErrDuplicateAccount
	}

	if err := s.db.Create(user).Error; err != nil {
		return errors.Wrap(err, "failed to create account")
	}
	return nil
}

func (s *SQLiteAccountStore) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up account")
	}
	return &user, nil
}

// AppendActivity adds one log row. The log is append-only; nothing in the
// service updates or deletes entries.
func (s *SQLiteAccountStore) AppendActivity(name, email, phone, action string) error {
	entry := models.ActivityEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Action:    action,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return errors.Wrap(err, "failed to append activity")
	}
	return nil
}

// ListActivity returns the most recent entries, newest first.
func (s *SQLiteAccountStore) ListActivity(limit int) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	q := s.db.Order("timestamp desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list activity")
	}
	return entries, nil
}

var _ AccountStore = (*SQLiteAccountStore)(nil)
