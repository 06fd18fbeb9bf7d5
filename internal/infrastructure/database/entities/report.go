package entities

import "time"

// Report is one abuse report. Slug is not a foreign key; the reported file
// may already be deleted.
type Report struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Slug         string    `gorm:"type:varchar(64);index;not null"`
	Reason       string    `gorm:"type:text;not null"`
	Email        string    `gorm:"type:varchar(320)"`
	ReporterHash string    `gorm:"type:char(64);index;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (Report) TableName() string {
	return "reports"
}
