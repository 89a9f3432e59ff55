package repository

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type (
	// BlobStore is the object-storage collaborator holding listing images.
	// UploadFile returns the public URL of the stored object; DeleteFile
	// reports ErrBlobNotFound when the object is already gone.
	BlobStore interface {
		UploadFile(ctx context.Context, path string, data io.Reader, size int64) (string, error)
		DeleteFile(ctx context.Context, url string) error
	}

	// MemoryBlobs is the in-process BlobStore used by the tests. It records
	// every delete so reconciliation can be asserted on.
	MemoryBlobs struct {
		mu      sync.Mutex
		objects map[string][]byte
		deleted []string
	}
)

const memoryBlobBase = "https://blobs.test"

func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{objects: make(map[string][]byte)}
}

func (b *MemoryBlobs) UploadFile(ctx context.Context, path string, data io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	url := fmt.Sprintf("%s/%s", memoryBlobBase, path)
	b.mu.Lock()
	b.objects[url] = content
	b.mu.Unlock()
	return url, nil
}

func (b *MemoryBlobs) DeleteFile(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, url)
	if _, ok := b.objects[url]; !ok {
		return ErrBlobNotFound
	}
	delete(b.objects, url)
	return nil
}

// Deleted returns every URL a delete was attempted for, in order.
func (b *MemoryBlobs) Deleted() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.deleted))
	copy(out, b.deleted)
	return out
}

// Stored reports whether an object currently exists at the URL.
func (b *MemoryBlobs) Stored(url string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[url]
	return ok
}
