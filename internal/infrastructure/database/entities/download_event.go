package entities

import "time"

// DownloadEvent is one row of the append-only download log. No foreign key:
// events may outlive the file they reference.
type DownloadEvent struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	FileID      string    `gorm:"type:varchar(40);index;not null"`
	Fingerprint string    `gorm:"type:char(64);index;not null"`
	Timestamp   time.Time `gorm:"index;not null"`
}

func (DownloadEvent) TableName() string {
	return "downloads"
}
