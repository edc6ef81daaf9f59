package models

import (
	"time"
)

// SignalRecord is the persisted per-altcoin outcome of one scan cycle.
type SignalRecord struct {
	ID          uint      `gorm:"primaryKey"`
	Symbol      string    `gorm:"index;not null"`
	FinalSignal string    `gorm:"not null"`
	AltSignal   string
	Confidence  string
	BTCTrend    string
	BTCRegime   string
	Correlation float64   `gorm:"type:decimal(10,4)"`
	IsDivergent bool
	Reason      string
	RewardRisk  float64   `gorm:"type:decimal(10,4)"`
	Target      float64   `gorm:"type:decimal(20,8)"`
	Stop        float64   `gorm:"type:decimal(20,8)"`
	CycleTime   time.Time `gorm:"index;not null"`
}

// TableName sets the table name for SignalRecord model
func (SignalRecord) TableName() string {
	return "signal_records"
}
