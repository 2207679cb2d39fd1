package repository

import (
	"context"
	"fmt"
	"io"
	"strings"

	"ai-tutoring-system/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
)

const listPageSize = 100

// DocumentBlobRepository implements domain.BlobStore on a Supabase Storage bucket
type DocumentBlobRepository struct {
	supabaseClient domain.SupabaseClient
	bucket         string
	logger         domain.Logger
}

// NewDocumentBlobRepository creates a repository for bucket
func NewDocumentBlobRepository(supabaseClient domain.SupabaseClient, bucket string, logger domain.Logger) *DocumentBlobRepository {
	return &DocumentBlobRepository{
		supabaseClient: supabaseClient,
		bucket:         bucket,
		logger:         logger,
	}
}

func (r *DocumentBlobRepository) storage(token string) (*storage_go.Client, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil || client.Storage == nil {
		return nil, fmt.Errorf("supabase storage not initialized: %w", domain.ErrNotConfigured)
	}
	return client.Storage, nil
}

// Upload writes data at path, replacing an existing object
func (r *DocumentBlobRepository) Upload(ctx context.Context, path string, data io.Reader, contentType string, token string) error {
	st, err := r.storage(token)
	if err != nil {
		return err
	}

	upsert := true
	opts := storage_go.FileOptions{Upsert: &upsert}
	if contentType != "" {
		opts.ContentType = &contentType
	}

	if _, err := st.UploadFile(r.bucket, path, data, opts); err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}

	r.logger.Debug("Object uploaded", "bucket", r.bucket, "path", path)
	return nil
}

// List returns the objects directly under prefix
func (r *DocumentBlobRepository) List(ctx context.Context, prefix string, token string) ([]domain.StoredObject, error) {
	st, err := r.storage(token)
	if err != nil {
		return nil, err
	}

	var objects []domain.StoredObject
	for offset := 0; ; offset += listPageSize {
		files, err := st.ListFiles(r.bucket, strings.TrimSuffix(prefix, "/"), storage_go.FileSearchOptions{
			Limit:  listPageSize,
			Offset: offset,
			SortByOptions: storage_go.SortBy{
				Column: "name",
				Order:  "asc",
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
		}
		for _, f := range files {
			objects = append(objects, domain.StoredObject{Name: f.Name})
		}
		if len(files) < listPageSize {
			break
		}
	}
	return objects, nil
}

// Remove deletes the given object paths
func (r *DocumentBlobRepository) Remove(ctx context.Context, paths []string, token string) error {
	st, err := r.storage(token)
	if err != nil {
		return err
	}
	if _, err := st.RemoveFile(r.bucket, paths); err != nil {
		return fmt.Errorf("failed to remove objects: %w", err)
	}
	return nil
}

// Download returns the object bytes at path
func (r *DocumentBlobRepository) Download(ctx context.Context, path string, token string) ([]byte, error) {
	st, err := r.storage(token)
	if err != nil {
		return nil, err
	}

	data, err := st.DownloadFile(r.bucket, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", path, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, path)
	}
	return data, nil
}
