package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// BaseDir is the root of the media store. Paths handed to this package
// are storage-relative; the public URL prefix is resolved separately so
// the DB never holds absolute filesystem paths.
func BaseDir() string {
	if dir := os.Getenv("MEDIA_ROOT"); dir != "" {
		return dir
	}
	return "media"
}

func fullPath(relPath string) string {
	return filepath.Join(BaseDir(), filepath.FromSlash(relPath))
}

// Save writes an uploaded file to the given storage-relative path,
// creating parent directories as needed.
func Save(file *multipart.FileHeader, relPath string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst := fullPath(relPath)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

// Delete removes a stored file. Missing files are not an error.
func Delete(relPath string) error {
	err := os.Remove(fullPath(relPath))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Exists reports whether a file is present at the storage-relative path.
func Exists(relPath string) bool {
	_, err := os.Stat(fullPath(relPath))
	return err == nil
}

// URL resolves a storage-relative path to its public URL.
func URL(relPath string) string {
	prefix := os.Getenv("MEDIA_URL")
	if prefix == "" {
		prefix = "/media/"
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(relPath, "/")
}
