package utils

import (
	"encoding/json"
	"fmt"
	"mime/multipart"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// UploadToBlobStore pushes an uploaded image to the external object store
// gateway and returns the public URL it was stored under. Image persistence
// itself is the gateway's problem; the LMS only keeps the returned reference.
func UploadToBlobStore(file *multipart.FileHeader, folder string) (string, error) {
	if config.AppConfig.BlobStoreURL == "" {
		return "", fmt.Errorf("blob store is not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	client := resty.New()
	resp, err := client.R().
		SetAuthToken(config.AppConfig.BlobStoreKey).
		SetFileReader("file", file.Filename, src).
		SetFormData(map[string]string{"folder": folder}).
		Post(config.AppConfig.BlobStoreURL + "/upload")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return "", fmt.Errorf("blob store upload failed, code: %d", resp.StatusCode())
	}

	var uploadResp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body(), &uploadResp); err != nil {
		return "", err
	}
	if uploadResp.URL == "" {
		return "", fmt.Errorf("blob store returned no url")
	}

	return uploadResp.URL, nil
}
