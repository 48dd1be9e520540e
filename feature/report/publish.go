package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"termsheet-reconciler/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// contentTypes maps report file extensions to upload content types.
var contentTypes = map[string]string{
	".csv": "text/csv",
	".md":  "text/markdown",
}

// Publish uploads generated report files to the storage bucket under a
// fresh run identifier and returns the object names. Files keep their base
// names, so a run holds reports/<run-id>/reconciliation_report.csv and
// friends.
func (g *Generator) Publish(ctx context.Context, client storage.Client, bucket string, paths []string) ([]string, error) {
	runID := uuid.NewString()

	var objects []string
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open report %s: %w", path, err)
		}

		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("stat report %s: %w", path, err)
		}

		ext := filepath.Ext(path)
		objectName := fmt.Sprintf("reports/%s/%s", runID, filepath.Base(path))
		_, err = client.PutObject(ctx, bucket, objectName, f, info.Size(), minio.PutObjectOptions{
			ContentType: contentTypes[ext],
		})
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("upload report %s: %w", objectName, err)
		}

		g.logger.Info("Published report",
			zap.String("bucket", bucket),
			zap.String("object", objectName),
		)
		objects = append(objects, objectName)
	}
	return objects, nil
}
