package booking

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"termsheet-reconciler/core/reconcile"
	"termsheet-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// LoadObject reads booking records from an object in the storage bucket.
// The object format is inferred from the extension (.csv or .json).
func LoadObject(ctx context.Context, client storage.Client, bucket, objectName string) ([]reconcile.BookingRecord, error) {
	obj, err := client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get booking object %s: %w", objectName, err)
	}
	defer obj.Close()

	switch strings.ToLower(filepath.Ext(objectName)) {
	case ".csv":
		return ReadCSV(obj)
	case ".json":
		data, err := io.ReadAll(obj)
		if err != nil {
			return nil, fmt.Errorf("read booking object %s: %w", objectName, err)
		}
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported booking object format %q", filepath.Ext(objectName))
	}
}
