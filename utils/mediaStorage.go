package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"forma/config"

	"github.com/go-resty/resty/v2"
)

// MediaStorage pushes course files to the external media host and returns
// the URL they are served from.
type MediaStorage interface {
	Upload(file *multipart.FileHeader, folder, publicID string) (string, error)
}

// Media is the storage used by course controllers. main() wires the cloud
// client; tests replace it with a stub.
var Media MediaStorage

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CloudMediaStorage talks to a Cloudinary-style signed upload endpoint.
type CloudMediaStorage struct {
	client *resty.Client
}

func NewCloudMediaStorage() *CloudMediaStorage {
	return &CloudMediaStorage{
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// Upload sends the file as multipart form data to the host's auto upload
// endpoint and returns the secure URL.
func (s *CloudMediaStorage) Upload(file *multipart.FileHeader, folder, publicID string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := signUpload(folder, publicID, timestamp)

	var result uploadResponse
	resp, err := s.client.R().
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{
			"api_key":   config.AppConfig.MediaAPIKey,
			"folder":    folder,
			"public_id": publicID,
			"timestamp": timestamp,
			"signature": signature,
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("%s/%s/auto/upload", config.AppConfig.MediaBaseURL, config.AppConfig.MediaCloudName))
	if err != nil {
		return "", err
	}

	if resp.IsError() || result.SecureURL == "" {
		if result.Error.Message != "" {
			return "", fmt.Errorf("media upload failed: %s", result.Error.Message)
		}
		return "", fmt.Errorf("media upload failed with status %d", resp.StatusCode())
	}

	return result.SecureURL, nil
}

// signUpload signs the upload parameters the way the host expects:
// alphabetically ordered params, then the API secret, hashed with SHA-1.
func signUpload(folder, publicID, timestamp string) string {
	payload := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s%s",
		folder, publicID, timestamp, config.AppConfig.MediaAPISecret)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
