package services

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var errStorageDisabled = fmt.Errorf("storage is not configured")

// StorageService provides S3-backed file storage for product galleries,
// brand assets and listing images. A nil service rejects every call so the
// API stays usable without S3 credentials.
type StorageService struct {
	s3Client *s3.S3
	bucket   string
	baseURL  string
}

// NewStorageService creates a new storage service
func NewStorageService() (*StorageService, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	bucket := os.Getenv("S3_BUCKET")

	if accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("S3 configuration missing")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(getEnvOrDefault("S3_REGION", "us-east-1")),
		Endpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(
			accessKey,
			secretKey,
			"",
		),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	baseURL := os.Getenv("S3_PUBLIC_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s", bucket)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		bucket:   bucket,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// UploadProductImage uploads a gallery image for a product. Returns the
// public URL and the S3 key so the image can be deleted later.
func (s *StorageService) UploadProductImage(fileHeader *multipart.FileHeader, productID uuid.UUID) (string, string, error) {
	if s == nil {
		return "", "", errStorageDisabled
	}
	contentType, file, err := openAndDetect(fileHeader)
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	if !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("file is not an image: %s", contentType)
	}

	s3Key := fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), extensionFor(contentType, fileHeader.Filename))
	url, err := s.put(file, s3Key, contentType)
	if err != nil {
		return "", "", err
	}
	return url, s3Key, nil
}

// UploadBrandAsset uploads a brand asset (logo, price sheet)
func (s *StorageService) UploadBrandAsset(fileHeader *multipart.FileHeader, brandID uuid.UUID) (string, error) {
	if s == nil {
		return "", errStorageDisabled
	}
	contentType, file, err := openAndDetect(fileHeader)
	if err != nil {
		return "", err
	}
	defer file.Close()

	s3Key := fmt.Sprintf("brands/%s/%s%s", brandID, uuid.New(), filepath.Ext(fileHeader.Filename))
	return s.put(file, s3Key, contentType)
}

// UploadListingImage uploads one listing image keyed by the listing SKU
func (s *StorageService) UploadListingImage(fileHeader *multipart.FileHeader, sku string) (string, error) {
	if s == nil {
		return "", errStorageDisabled
	}
	contentType, file, err := openAndDetect(fileHeader)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("file is not an image: %s", contentType)
	}

	s3Key := fmt.Sprintf("listings/%s/%s%s", sku, uuid.New(), extensionFor(contentType, fileHeader.Filename))
	return s.put(file, s3Key, contentType)
}

// DeleteFile deletes a file from S3
func (s *StorageService) DeleteFile(s3Key string) error {
	if s == nil {
		return errStorageDisabled
	}
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	log.Debug().Str("key", s3Key).Msg("File deleted from S3")
	return nil
}

// openAndDetect opens a multipart file and sniffs its content type
func openAndDetect(fileHeader *multipart.FileHeader) (string, multipart.File, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && n == 0 {
		file.Close()
		return "", nil, fmt.Errorf("failed to read file for content type detection: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return "", nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	return http.DetectContentType(buffer[:n]), file, nil
}

func extensionFor(contentType, filename string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	return ".bin"
}

func (s *StorageService) put(file multipart.File, s3Key, contentType string) (string, error) {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s3Key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("%s/%s", s.baseURL, s3Key)
	log.Debug().Str("key", s3Key).Msg("File uploaded to S3")
	return publicURL, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
