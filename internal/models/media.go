package models

// MediaStats is a best-effort usage summary of the media directories.
type MediaStats struct {
	TotalBytes int64 `json:"totalBytes"`
	ImageCount int   `json:"imageCount"`
	AudioCount int   `json:"audioCount"`
}
