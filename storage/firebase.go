package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"unisale-backend/utils"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

// FirebaseStorage keeps objects in the Firebase project's Cloud Storage bucket.
type FirebaseStorage struct {
	app    *firebase.App
	bucket string
}

func NewFirebaseStorage(app *firebase.App, bucket string) *FirebaseStorage {
	return &FirebaseStorage{app: app, bucket: bucket}
}

func (s *FirebaseStorage) bucketHandle(ctx context.Context) (*gcs.BucketHandle, error) {
	if s.bucket == "" {
		return nil, errors.New("FIREBASE_STORAGE_BUCKET not set")
	}
	if s.app == nil {
		return nil, errors.New("firebase app not initialized")
	}

	client, err := s.app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	return client.Bucket(s.bucket)
}

func (s *FirebaseStorage) Upload(ctx context.Context, r io.Reader, filename, contentType, folder string) (string, error) {
	bucket, err := s.bucketHandle(ctx)
	if err != nil {
		return "", err
	}

	objectPath := ObjectKey(folder, filename)
	obj := bucket.Object(objectPath)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return "", err
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	// Make object publicly readable so the URL works without authentication
	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		log.Printf("Warning: failed to set public ACL on %s: %v", objectPath, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectPath), nil
}

func (s *FirebaseStorage) Delete(ctx context.Context, publicURL string) error {
	objectPath, err := utils.ExtractObjectPath(publicURL)
	if err != nil {
		return err
	}

	bucket, err := s.bucketHandle(ctx)
	if err != nil {
		return err
	}

	if err := bucket.Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectPath, err)
	}

	log.Printf("Deleted file %s from bucket %s", objectPath, s.bucket)
	return nil
}
