package responses

import (
	"time"

	domain "minecrox-server/services/pack-api/internal/domain/file"
	reportdomain "minecrox-server/services/pack-api/internal/domain/report"
)

// FileMetadataResponse is the public projection of a stored file.
type FileMetadataResponse struct {
	ID               string     `json:"id"`
	Filename         string     `json:"filename"`
	Slug             string     `json:"slug"`
	FileType         string     `json:"file_type"`
	MinecraftVersion string     `json:"minecraft_version,omitempty"`
	Loader           string     `json:"loader,omitempty"`
	Description      string     `json:"description,omitempty"`
	Tags             string     `json:"tags,omitempty"`
	FileSize         int64      `json:"file_size"`
	SHA1Hash         string     `json:"sha1_hash"`
	DownloadCount    int64      `json:"download_count"`
	CreatedAt        time.Time  `json:"created_at"`
	LastDownload     *time.Time `json:"last_download"`
	ExpireAt         time.Time  `json:"expire_at"`
}

// BuildFileMetadataResponse projects a domain file, omitting storage keys
// and hashes that must never reach clients.
func BuildFileMetadataResponse(f *domain.StoredFile) *FileMetadataResponse {
	return &FileMetadataResponse{
		ID:               f.ID,
		Filename:         f.Filename,
		Slug:             f.Slug,
		FileType:         string(f.Kind),
		MinecraftVersion: f.MinecraftVersion,
		Loader:           f.Loader,
		Description:      f.Description,
		Tags:             f.Tags,
		FileSize:         f.Size,
		SHA1Hash:         f.SHA1,
		DownloadCount:    f.DownloadCount,
		CreatedAt:        f.CreatedAt,
		LastDownload:     f.LastDownload,
		ExpireAt:         f.ExpireAt,
	}
}

// ReportResponse confirms a recorded abuse report.
type ReportResponse struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Reason    string    `json:"reason"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func BuildReportResponse(r *reportdomain.Report) *ReportResponse {
	return &ReportResponse{
		ID:        r.ID,
		Slug:      r.Slug,
		Reason:    r.Reason,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
}
