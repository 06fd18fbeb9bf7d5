package file

import (
	"context"
	"time"
)

// Kind is the classified archive type.
type Kind string

const (
	KindResourcePack Kind = "resource_pack"
	KindDatapack     Kind = "datapack"
)

// StoredFile represents one uploaded archive's metadata.
type StoredFile struct {
	ID               string     `json:"id"`
	Filename         string     `json:"filename"`
	Slug             string     `json:"slug"`
	Kind             Kind       `json:"file_type"`
	MinecraftVersion string     `json:"minecraft_version,omitempty"`
	Loader           string     `json:"loader,omitempty"`
	Description      string     `json:"description,omitempty"`
	Tags             string     `json:"tags,omitempty"`
	Size             int64      `json:"file_size"`
	StorageKey       string     `json:"-"`
	SHA1             string     `json:"sha1_hash"`
	DownloadCount    int64      `json:"download_count"`
	CreatedAt        time.Time  `json:"created_at"`
	LastDownload     *time.Time `json:"last_download"`
	ExpireAt         time.Time  `json:"expire_at"`
	UploaderHash     string     `json:"-"`
	DeleteTokenHash  string     `json:"-"`
}

// DownloadEvent is one recorded download of a stored file. Events are an
// append-only log and may outlive the file they reference.
type DownloadEvent struct {
	FileID      string
	Fingerprint string
	Timestamp   time.Time
}

// ResourcePackInfo carries everything a server operator needs to reference
// the pack from server.properties.
type ResourcePackInfo struct {
	DownloadURL             string `json:"download_url"`
	SHA1                    string `json:"sha1"`
	ServerPropertiesSnippet string `json:"server_properties_snippet"`
}

// UploadResult is returned once per upload. DeleteToken is disclosed only
// here; the service stores a salted hash of it.
type UploadResult struct {
	ID             string            `json:"id"`
	Slug           string            `json:"slug"`
	LandingPageURL string            `json:"landing_page_url"`
	DeleteToken    string            `json:"delete_token"`
	ResourcePack   *ResourcePackInfo `json:"resource_pack,omitempty"`
}

// Analytics summarizes download activity for one file.
type Analytics struct {
	Slug           string     `json:"slug"`
	DownloadCount  int64      `json:"download_count"`
	LastDownload   *time.Time `json:"last_download"`
	TodayDownloads int64      `json:"today_downloads"`
	Today          string     `json:"today"`
}

// Repository defines persistence operations needed by the service. Lookup
// methods return (nil, nil) when no row matches.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*StoredFile, error)
	CountByUploader(ctx context.Context, uploaderHash string) (int64, error)
	Create(ctx context.Context, f *StoredFile) error
	Delete(ctx context.Context, id string) error

	// RecordDownload atomically increments the counter, refreshes
	// last_download, pushes expire_at forward and appends a DownloadEvent.
	// Either all of it commits or none of it does.
	RecordDownload(ctx context.Context, fileID string, ev DownloadEvent, expireAt time.Time) error

	FindExpired(ctx context.Context, now time.Time, limit int) ([]StoredFile, error)
	CountDownloadsSince(ctx context.Context, fileID string, since time.Time) (int64, error)
	DeleteDownloadsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Storage defines object store operations.
type Storage interface {
	BuildKey(fileID, filename string, now time.Time) string
	Upload(ctx context.Context, localPath, key string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}
