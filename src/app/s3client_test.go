package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	minio_mock "carscout/src/app/mock"
	"carscout/src/repository"
)

func TestMinioS3Client(t *testing.T) {
	newClient := func(mc *minio_mock.MockClient) *MinioS3Client {
		return &MinioS3Client{
			endpoint:   "s3.test",
			bucketName: "car-images",
			useSSL:     true,
			client:     mc,
		}
	}

	t.Run("UploadFile", func(t *testing.T) {
		mc := new(minio_mock.MockClient)
		mc.On("PutObject", mock.Anything, "car-images", "car_images/user-1/1_0.jpg",
			mock.Anything, int64(5), mock.Anything).Return(minio.UploadInfo{}, nil)

		url, err := newClient(mc).UploadFile(context.Background(),
			"car_images/user-1/1_0.jpg", bytes.NewReader([]byte("image")), 5)
		assert.NoError(t, err)
		assert.Equal(t, "https://s3.test/car-images/car_images/user-1/1_0.jpg", url)
		mc.AssertExpectations(t)
	})

	t.Run("UploadFile error", func(t *testing.T) {
		mc := new(minio_mock.MockClient)
		mc.On("PutObject", mock.Anything, "car-images", mock.Anything,
			mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("bucket gone"))

		_, err := newClient(mc).UploadFile(context.Background(),
			"car_images/user-1/1_0.jpg", bytes.NewReader(nil), 0)
		assert.Error(t, err)
	})

	t.Run("DeleteFile", func(t *testing.T) {
		mc := new(minio_mock.MockClient)
		mc.On("StatObject", mock.Anything, "car-images", "car_images/user-1/1_0.jpg",
			mock.Anything).Return(minio.ObjectInfo{}, nil)
		mc.On("RemoveObject", mock.Anything, "car-images", "car_images/user-1/1_0.jpg",
			mock.Anything).Return(nil)

		err := newClient(mc).DeleteFile(context.Background(),
			"https://s3.test/car-images/car_images/user-1/1_0.jpg")
		assert.NoError(t, err)
		mc.AssertExpectations(t)
	})

	t.Run("DeleteFile missing object", func(t *testing.T) {
		mc := new(minio_mock.MockClient)
		mc.On("StatObject", mock.Anything, "car-images", "car_images/user-1/gone.jpg",
			mock.Anything).Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})

		err := newClient(mc).DeleteFile(context.Background(),
			"https://s3.test/car-images/car_images/user-1/gone.jpg")
		assert.ErrorIs(t, err, repository.ErrBlobNotFound)
		mc.AssertNotCalled(t, "RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
