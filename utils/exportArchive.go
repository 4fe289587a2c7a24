package utils

import (
	"context"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// getGoogleClient initializes a Google Cloud Storage client.
func getGoogleClient(ctx context.Context) (*storage.Client, error) {
	// Prefer ADC (Cloud Run service account / GOOGLE_APPLICATION_CREDENTIALS).
	// If you need to provide explicit JSON (e.g. locally), set GCS_CREDENTIALS_JSON.
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		return storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	}
	return storage.NewClient(ctx)
}

// ArchiveExport writes an export snapshot to the EXPORT_BUCKET GCS bucket.
// Returns (false, nil) when no bucket is configured so local runs skip
// archiving instead of failing.
func ArchiveExport(ctx context.Context, objectName string, contentType string, data []byte) (bool, error) {
	bucketName := os.Getenv("EXPORT_BUCKET")
	if bucketName == "" {
		return false, nil
	}

	client, err := getGoogleClient(ctx)
	if err != nil {
		return false, err
	}
	defer client.Close()

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		return false, err
	}
	if err := wc.Close(); err != nil {
		return false, err
	}
	return true, nil
}
