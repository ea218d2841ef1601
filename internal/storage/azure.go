package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureConfig holds Azure Blob Storage connection parameters.
type AzureConfig struct {
	ConnectionString string
	Container        string
}

// AzureStore implements Store on an Azure Blob Storage container.
type AzureStore struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// NewAzureStore creates the client and ensures the container exists.
func NewAzureStore(ctx context.Context, cfg AzureConfig, logger *slog.Logger) (*AzureStore, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	s := &AzureStore{
		client:    client,
		container: cfg.Container,
		logger:    logger.With("storage", "azure"),
	}

	if _, err := client.CreateContainer(ctx, cfg.Container, nil); err != nil {
		if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return nil, fmt.Errorf("ensure container %s: %w", cfg.Container, err)
		}
	}
	s.logger.Info("storage container ready", "container", cfg.Container)

	return s, nil
}

// Upload writes data to a blob, overwriting any existing one.
func (s *AzureStore) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	if name == "" {
		return ErrEmptyName
	}

	opts := &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}
	if _, err := s.client.UploadBuffer(ctx, s.container, name, data, opts); err != nil {
		return fmt.Errorf("upload blob %s: %w", name, err)
	}
	return nil
}

// PublicURL returns the blob endpoint URL for name.
func (s *AzureStore) PublicURL(name string) string {
	return s.client.
		ServiceClient().
		NewContainerClient(s.container).
		NewBlobClient(name).
		URL()
}
