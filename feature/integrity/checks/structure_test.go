package checks

import (
	"context"
	"testing"

	"content-relations/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "relations").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "relations")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("Bucket Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "relations").Return(false, assert.AnError)

		_, err := CheckStructure(context.Background(), mockClient, "relations")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "relations").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "relations", mock.Anything).Return(mocks.Listing())

		missing, err := CheckStructure(context.Background(), mockClient, "relations")
		assert.NoError(t, err)
		assert.Equal(t, RequiredFolders, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "relations").Return(true, nil)

		for _, folder := range RequiredFolders {
			mockClient.On("ListObjects", mock.Anything, "relations", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == folder+"/"
			})).Return(mocks.Listing(folder + "/relations-20260101T000000.000Z.json"))
		}

		missing, err := CheckStructure(context.Background(), mockClient, "relations")
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Creates markers", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "relations", "exports/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := FixStructure(context.Background(), mockClient, "relations", logger, []string{"exports"})
		assert.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "PutObject", 1)
	})

	t.Run("Upload error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "relations", "exports/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, assert.AnError)

		err := FixStructure(context.Background(), mockClient, "relations", logger, []string{"exports/"})
		assert.ErrorContains(t, err, "failed to create folder exports/")
	})
}
