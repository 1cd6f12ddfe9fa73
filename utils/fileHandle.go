package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AttachmentStore persists message attachments and hands back a retrievable
// path. The default is the local filesystem; tests swap in a temp directory.
type AttachmentStore interface {
	Save(file *multipart.FileHeader, messageID uint) (string, error)
	Remove(path string) error
}

// LocalAttachmentStore writes attachments under root/messages/<messageID>/.
type LocalAttachmentStore struct {
	Root string
}

func NewLocalAttachmentStore(root string) *LocalAttachmentStore {
	return &LocalAttachmentStore{Root: root}
}

// Save stores the uploaded file in a per-message directory with a
// timestamp-prefixed filename and returns the stored path.
func (s *LocalAttachmentStore) Save(file *multipart.FileHeader, messageID uint) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(s.Root, "messages", strconv.FormatUint(uint64(messageID), 10))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	newFilename := time.Now().Format("20060102_150405") + "_" + filepath.Base(file.Filename)
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// Remove deletes the stored file and its directory if that left it empty.
func (s *LocalAttachmentStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) == 0 {
		return os.Remove(dir)
	}
	return nil
}
