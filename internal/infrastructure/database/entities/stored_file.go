package entities

import "time"

// StoredFile is the persisted metadata for one uploaded archive.
type StoredFile struct {
	ID       string `gorm:"type:varchar(40);primaryKey"`
	Filename string `gorm:"type:varchar(255);not null"`
	Slug     string `gorm:"type:varchar(64);uniqueIndex;not null"`
	FileType string `gorm:"type:varchar(32);not null"`

	MinecraftVersion string `gorm:"type:varchar(64)"`
	Loader           string `gorm:"type:varchar(64)"`
	Description      string `gorm:"type:text"`
	Tags             string `gorm:"type:text"`

	FileSize   int64  `gorm:"not null"`
	StorageKey string `gorm:"type:varchar(1024);not null"`
	SHA1Hash   string `gorm:"type:char(40);not null"`

	DownloadCount int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	LastDownload  *time.Time
	ExpireAt      time.Time `gorm:"index;not null"`

	UploaderHash    string `gorm:"type:char(64);index;not null"`
	DeleteTokenHash string `gorm:"type:char(64);not null"`
}

func (StoredFile) TableName() string {
	return "files"
}
