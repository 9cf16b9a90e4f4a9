package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dowadream/errand-service/internal/pkg/logger"
)

// LocalStorage handles saving uploaded images to the local filesystem.
type LocalStorage struct {
	basePath string // Root directory where files are stored
	baseURL  string // Base URL prepended to returned file paths, optional
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFileWithPath saves a file to a subdirectory of the storage root.
// Files get a uuid filename to prevent collisions between uploads.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return nil, fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	accessiblePath := ls.accessiblePath(subPath, uniqueFilename)

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("accessible_path", accessiblePath).Msg("File saved successfully")
	return &StoredFile{
		Path:     accessiblePath,
		Filename: uniqueFilename,
		FileSize: fileHeader.Size,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

// SaveFile saves an uploaded file at the storage root.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (*StoredFile, error) {
	return ls.SaveFileWithPath(fileHeader, "")
}

func (ls *LocalStorage) accessiblePath(subPath, filename string) string {
	if ls.baseURL != "" {
		base := strings.TrimRight(ls.baseURL, "/")
		if subPath != "" {
			return base + "/" + subPath + "/" + filename
		}
		return base + "/" + filename
	}
	if subPath != "" {
		return filepath.Join("uploads", subPath, filename)
	}
	return filepath.Join("uploads", filename)
}

// DeleteFile removes a file from storage. Accepts the path as stored on the
// image row. Deleting a missing file is not an error.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	rel := filePath
	if ls.baseURL != "" {
		rel = strings.TrimPrefix(rel, strings.TrimRight(ls.baseURL, "/"))
	}
	rel = strings.TrimPrefix(strings.TrimPrefix(rel, "/"), "uploads/")
	if rel == "" || rel == "." || rel == "/" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(rel))

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}
