package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"unisale-backend/storage"
)

// mockStorage records uploads and deletes. failAt makes the n-th upload
// (1-based) fail.
type mockStorage struct {
	UploadCalls []string
	DeleteCalls []string
	failAt      int
	DeleteFn    func(url string) error
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		UploadCalls: []string{},
		DeleteCalls: []string{},
	}
}

var _ storage.Client = (*mockStorage)(nil)

func (m *mockStorage) Upload(_ context.Context, r io.Reader, filename, _, folder string) (string, error) {
	if m.failAt > 0 && len(m.UploadCalls)+1 == m.failAt {
		return "", errors.New("upload failed")
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	url := fmt.Sprintf("https://storage.googleapis.com/test-bucket/%s", storage.ObjectKey(folder, filename))
	m.UploadCalls = append(m.UploadCalls, url)
	return url, nil
}

func (m *mockStorage) Delete(_ context.Context, url string) error {
	m.DeleteCalls = append(m.DeleteCalls, url)
	if m.DeleteFn != nil {
		return m.DeleteFn(url)
	}
	return nil
}
