package domain

// FileInfo is the object metadata the media gateway exposes: enough to set
// Content-Type and suggest a filename when proxying bytes.
type FileInfo struct {
	Name     string
	MimeType string
}
