package repositories

import (
	"CryptoSignalBot/internal/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SignalRepository struct {
	db *gorm.DB
}

// NewSignalRepository creates a new instance of SignalRepository
func NewSignalRepository(db *gorm.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

// Create adds a new SignalRecord to the database
func (r *SignalRepository) Create(record *models.SignalRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	return r.db.Create(record).Error
}

// CreateBatch inserts all records of one scan cycle
func (r *SignalRepository) CreateBatch(records []models.SignalRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.Create(&records).Error
}

// RecentBySymbol retrieves the latest records for a symbol, newest first
func (r *SignalRepository) RecentBySymbol(symbol string, limit int) ([]models.SignalRecord, error) {
	if symbol == "" {
		return nil, errors.New("symbol cannot be empty")
	}
	var records []models.SignalRecord
	err := r.db.Where("symbol = ?", symbol).
		Order("cycle_time desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// FindSince retrieves all records created after the given time
func (r *SignalRepository) FindSince(since time.Time) ([]models.SignalRecord, error) {
	var records []models.SignalRecord
	err := r.db.Where("cycle_time >= ?", since).
		Order("cycle_time asc").
		Find(&records).Error
	return records, err
}
