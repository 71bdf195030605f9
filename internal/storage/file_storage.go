package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FileStorage stores generated report artifacts
type FileStorage interface {
	// SaveFile writes content to fullPath, creating parent directories
	SaveFile(fullPath string, content []byte) error

	// SaveReport writes content under the base directory and returns the path
	SaveReport(name string, content []byte) (string, error)

	// ValidatePath checks that fullPath stays inside the base directory
	ValidatePath(fullPath string) error
}

// LocalFileStorage implements FileStorage for the local filesystem
type LocalFileStorage struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalFileStorage creates a new LocalFileStorage
func NewLocalFileStorage(baseDir string, logger *zap.Logger) *LocalFileStorage {
	return &LocalFileStorage{
		baseDir: baseDir,
		logger:  logger,
	}
}

// BaseDir returns the directory reports are written under
func (s *LocalFileStorage) BaseDir() string {
	return s.baseDir
}

// SaveReport writes content to baseDir/name
func (s *LocalFileStorage) SaveReport(name string, content []byte) (string, error) {
	fullPath := filepath.Join(s.baseDir, name)
	if err := s.SaveFile(fullPath, content); err != nil {
		return "", err
	}
	return fullPath, nil
}

// SaveFile writes content to fullPath. The file is written to a temporary
// sibling first and renamed into place.
func (s *LocalFileStorage) SaveFile(fullPath string, content []byte) error {
	if err := s.ValidatePath(fullPath); err != nil {
		return err
	}

	parentDir := filepath.Dir(fullPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		s.logger.Error("Failed to create parent directories",
			zap.String("path", parentDir),
			zap.Error(err))
		return fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(parentDir, "."+filepath.Base(fullPath)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		s.logger.Error("Failed to move file into place",
			zap.String("path", fullPath),
			zap.Error(err))
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("File saved successfully",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))

	return nil
}

// ValidatePath checks that the path is within baseDir
func (s *LocalFileStorage) ValidatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}

	return nil
}
