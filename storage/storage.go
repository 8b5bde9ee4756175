// Package storage uploads product and profile images to an object store and
// hands back public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"regexp"

	"github.com/google/uuid"
)

const (
	FolderProductImage   = "product-image"
	FolderProfilePicture = "profile-picture"
)

// Client is an object store holding publicly readable images.
type Client interface {
	// Upload stores r under folder and returns its public URL.
	Upload(ctx context.Context, r io.Reader, filename, contentType, folder string) (string, error)
	// Delete removes the object a previous Upload returned publicURL for.
	Delete(ctx context.Context, publicURL string) error
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFilename removes special characters from filenames and limits length.
func sanitizeFilename(filename string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(filename, "_")

	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}

	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "file"
	}

	return sanitized
}

// ObjectKey returns a unique key of the form folder/<uuid>_<filename>.
func ObjectKey(folder, filename string) string {
	return fmt.Sprintf("%s/%s_%s", folder, uuid.NewString(), sanitizeFilename(filename))
}

// UploadFile uploads a single multipart file.
func UploadFile(ctx context.Context, c Client, fh *multipart.FileHeader, folder string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	return c.Upload(ctx, f, fh.Filename, fh.Header.Get("Content-Type"), folder)
}

// UploadFiles uploads files in order. If any upload fails, every file already
// uploaded by this call is deleted before the error is returned.
func UploadFiles(ctx context.Context, c Client, files []*multipart.FileHeader, folder string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := UploadFile(ctx, c, fh, folder)
		if err != nil {
			DeleteFiles(ctx, c, urls)
			return nil, fmt.Errorf("failed to upload %s: %w", fh.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// DeleteFiles removes the given objects. Failures are logged, not returned.
func DeleteFiles(ctx context.Context, c Client, urls []string) {
	for _, url := range urls {
		if err := c.Delete(ctx, url); err != nil {
			log.Printf("Warning: failed to clean up uploaded file %s: %v", url, err)
		}
	}
}
