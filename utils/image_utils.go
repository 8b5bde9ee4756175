package utils

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ExtractObjectPath extracts storage object path from full Firebase URL
func ExtractObjectPath(url string) (string, error) {
	const prefix = "https://storage.googleapis.com/"
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("invalid URL")
	}

	// Remove prefix and bucket name
	path := strings.TrimPrefix(url, prefix)
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("invalid URL format")
	}

	return parts[1], nil
}

// ExtractCloudinaryPublicID turns a Cloudinary delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/product-image/abc_x.jpg
// into the public ID "product-image/abc_x".
func ExtractCloudinaryPublicID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	const marker = "/upload/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return "", fmt.Errorf("invalid URL format")
	}

	rest := u.Path[idx+len(marker):]
	segments := strings.Split(rest, "/")
	if len(segments) > 1 && strings.HasPrefix(segments[0], "v") && strings.Trim(segments[0][1:], "0123456789") == "" {
		segments = segments[1:]
	}
	rest = strings.Join(segments, "/")
	rest = strings.TrimSuffix(rest, path.Ext(rest))
	if rest == "" {
		return "", fmt.Errorf("invalid URL format")
	}

	return rest, nil
}
