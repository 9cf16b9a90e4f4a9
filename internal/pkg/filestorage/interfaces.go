package filestorage

import "mime/multipart"

// StoredFile describes where an uploaded file ended up
type StoredFile struct {
	Path     string // Accessible path or URL for the stored file
	Filename string // Generated filename on disk
	FileSize int64  // Size in bytes
	MimeType string // Declared MIME type of the upload
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves an uploaded file and returns its stored location
	SaveFile(fileHeader *multipart.FileHeader) (*StoredFile, error)

	// SaveFileWithPath saves an uploaded file under a subdirectory
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error
}
