package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalFileStorage_SaveFile(t *testing.T) {
	tempDir := t.TempDir()
	logger, _ := zap.NewDevelopment()
	fs := NewLocalFileStorage(tempDir, logger)

	t.Run("saves file successfully", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "payout.xlsx")
		content := []byte("workbook bytes")

		err := fs.SaveFile(fullPath, content)

		require.NoError(t, err)
		saved, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, content, saved)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "2024", "03", "payout.xlsx")

		require.NoError(t, fs.SaveFile(fullPath, []byte("content")))

		assert.FileExists(t, fullPath)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "overwrite.xlsx")

		require.NoError(t, fs.SaveFile(fullPath, []byte("original")))
		require.NoError(t, fs.SaveFile(fullPath, []byte("updated")))

		content, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("updated"), content)
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		dir := filepath.Join(tempDir, "clean")
		require.NoError(t, fs.SaveFile(filepath.Join(dir, "a.xlsx"), []byte("a")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.xlsx", entries[0].Name())
	})

	t.Run("rejects paths outside the base directory", func(t *testing.T) {
		err := fs.SaveFile(filepath.Join(tempDir, "..", "escape.xlsx"), []byte("x"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "escapes base directory")
	})
}

func TestLocalFileStorage_SaveReport(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(filepath.Join(tempDir, "reports"), zap.NewNop())

	path, err := fs.SaveReport("payout.xlsx", []byte("workbook"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "reports", "payout.xlsx"), path)
	assert.FileExists(t, path)
	assert.Equal(t, filepath.Join(tempDir, "reports"), fs.BaseDir())
}

func TestLocalFileStorage_ValidatePath(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())

	t.Run("accepts path within base", func(t *testing.T) {
		assert.NoError(t, fs.ValidatePath(filepath.Join(tempDir, "payout.xlsx")))
	})

	t.Run("rejects the base directory itself", func(t *testing.T) {
		assert.Error(t, fs.ValidatePath(tempDir))
	})

	t.Run("rejects absolute path outside base", func(t *testing.T) {
		err := fs.ValidatePath("/etc/passwd")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "escapes base directory")
	})

	t.Run("rejects traversal", func(t *testing.T) {
		assert.Error(t, fs.ValidatePath(filepath.Join(tempDir, "..", "..", "etc", "passwd")))
	})

	t.Run("rejects sibling with shared prefix", func(t *testing.T) {
		assert.Error(t, fs.ValidatePath(tempDir+"-other/payout.xlsx"))
	})
}
