package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
)

// ImageHandle is either an image already stored remotely (URL set) or a
// device-local upload (Data set).
type ImageHandle struct {
	URL  string
	Name string
	Data io.Reader
	Size int64
}

// RemoteImage wraps a URL that already lives in the blob store.
func RemoteImage(url string) ImageHandle {
	return ImageHandle{URL: url}
}

// LocalImage wraps not-yet-uploaded image content.
func LocalImage(name string, data io.Reader, size int64) ImageHandle {
	return ImageHandle{Name: name, Data: data, Size: size}
}

// Remote reports whether the handle points at an already-stored object.
func (h ImageHandle) Remote() bool {
	return h.URL != ""
}

// uploadImages stores each local handle under a per-user, per-batch path and
// returns the resulting URLs in input order. The batch id keeps two batches
// landing in the same millisecond from reusing a path, which would let the
// reconciliation delete destroy a fresh upload.
func uploadImages(ctx context.Context, blobs BlobStore, ownerID string, images []ImageHandle) ([]string, error) {
	stamp := time.Now().UnixMilli()
	batch := uuid.NewString()
	urls := make([]string, 0, len(images))
	for i, image := range images {
		path := fmt.Sprintf("car_images/%s/%d_%s_%d.jpg", ownerID, stamp, batch, i)
		url, err := blobs.UploadFile(ctx, path, image.Data, image.Size)
		if err != nil {
			return nil, fmt.Errorf("upload image %d: %w", i, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// reconcileImages brings the stored image set in line with the submitted
// handles: kept remote URLs stay (original order), local handles are uploaded
// and appended, and previously stored URLs no longer kept get a best-effort
// delete. A missing object on delete is skipped; any other delete failure is
// logged and swallowed.
func reconcileImages(ctx context.Context, blobs BlobStore, ownerID string, previous []string, handles []ImageHandle) ([]string, error) {
	kept := make([]string, 0, len(handles))
	local := make([]ImageHandle, 0, len(handles))
	for _, h := range handles {
		if h.Remote() {
			kept = append(kept, h.URL)
		} else {
			local = append(local, h)
		}
	}

	uploaded, err := uploadImages(ctx, blobs, ownerID, local)
	if err != nil {
		return nil, err
	}

	for _, url := range previous {
		if containsURL(kept, url) {
			continue
		}
		if err := blobs.DeleteFile(ctx, url); err != nil {
			if errors.Is(err, ErrBlobNotFound) {
				log.Printf("image %s already gone, skipping delete", url)
			} else {
				log.Printf("warning: failed to delete image %s: %v", url, err)
			}
		}
	}

	return append(kept, uploaded...), nil
}

func containsURL(urls []string, url string) bool {
	for _, u := range urls {
		if u == url {
			return true
		}
	}
	return false
}
