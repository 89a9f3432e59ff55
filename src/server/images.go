package server

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"carscout/src/repository"
)

const (
	imageFileField = "images"
	keptURLField   = "existing_images"
)

// formImages collects the image handles of a multipart submit: kept remote
// URLs first, then the uploaded files read into memory.
func formImages(c *gin.Context) ([]repository.ImageHandle, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("expected multipart form: %w", err)
	}

	var handles []repository.ImageHandle
	for _, url := range form.Value[keptURLField] {
		if url != "" {
			handles = append(handles, repository.RemoteImage(url))
		}
	}
	for _, header := range form.File[imageFileField] {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("can not open uploaded file %s: %w", header.Filename, err)
		}
		var buffer bytes.Buffer
		_, err = io.Copy(&buffer, file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("can not read uploaded file %s: %w", header.Filename, err)
		}
		handles = append(handles, repository.LocalImage(header.Filename, &buffer, int64(buffer.Len())))
	}
	return handles, nil
}
