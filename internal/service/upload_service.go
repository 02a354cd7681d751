package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mentora-go-api/internal/dto"
)

// ErrUploadTooLarge indicates the payload exceeded the configured limit.
var ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")

// FileStorage abstracts the external attachment store.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// UploadService turns an uploaded file into the opaque attachment triple that
// tasks embed.
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (dto.UploadResponse, error)
}

type uploadService struct {
	storage FileStorage
	maxSize int64
	logger  zerolog.Logger
}

// NewUploadService constructs an upload service.
func NewUploadService(storage FileStorage, maxSizeMB int, logger zerolog.Logger) UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}

	return &uploadService{
		storage: storage,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		logger:  logger.With().Str("component", "upload_service").Logger(),
	}
}

func (s *uploadService) Upload(ctx context.Context, file *multipart.FileHeader) (dto.UploadResponse, error) {
	if file.Size > s.maxSize {
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	fileType := mimetype.Detect(data).String()

	url, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(data))
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to store file: %w", err)
	}

	s.logger.Info().Str("filename", file.Filename).Str("file_type", fileType).Msg("attachment uploaded")

	return dto.UploadResponse{
		Filename: file.Filename,
		URL:      url,
		FileType: fileType,
	}, nil
}
