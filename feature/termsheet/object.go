package termsheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"termsheet-reconciler/core/reconcile"
	"termsheet-reconciler/core/storage"

	"github.com/ledongthuc/pdf"
	"github.com/minio/minio-go/v7"
)

// ExtractObjectText pulls the plain text out of a PDF term sheet stored in
// the bucket. The object is buffered in memory, term sheets are small.
func ExtractObjectText(ctx context.Context, client storage.Client, bucket, objectName string) (string, error) {
	data, err := readObject(ctx, client, bucket, objectName)
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf object %s: %w", objectName, err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "\n\n--- PAGE %d ---\n%s", pageNum, text)
	}

	content := strings.TrimSpace(sb.String())
	if content == "" {
		return "", fmt.Errorf("pdf object %s contains no extractable text", objectName)
	}
	return content, nil
}

// LoadJSONObject reads a structured term sheet object from the bucket.
func LoadJSONObject(ctx context.Context, client storage.Client, bucket, objectName string) (*reconcile.TermSheet, error) {
	data, err := readObject(ctx, client, bucket, objectName)
	if err != nil {
		return nil, err
	}

	ts, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse term sheet object %s: %w", objectName, err)
	}
	return ts, nil
}

func readObject(ctx context.Context, client storage.Client, bucket, objectName string) ([]byte, error) {
	obj, err := client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get term sheet object %s: %w", objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read term sheet object %s: %w", objectName, err)
	}
	return data, nil
}
