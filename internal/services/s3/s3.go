// Package s3service stores catalog snapshots and recommendation reports in S3.
package s3service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	appConfig "psp-advisor/internal/config"
	"psp-advisor/internal/models"
	"psp-advisor/internal/utils"
)

// ObjectAPI is the part of the S3 client the service uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PresignAPI is the part of the S3 presign client the service uses.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Service handles S3 operations
type Service struct {
	client        ObjectAPI
	presigner     PresignAPI
	bucketName    string
	snapshotKey   string
	reportPrefix  string
	expiryMinutes int
}

// PresignedURLResult contains the presigned URL details
type PresignedURLResult struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewService creates a new S3 service
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(appCfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	return NewWithClients(client, s3.NewPresignClient(client), appCfg), nil
}

// NewWithClients creates a service around existing clients.
func NewWithClients(client ObjectAPI, presigner PresignAPI, appCfg *appConfig.Config) *Service {
	return &Service{
		client:        client,
		presigner:     presigner,
		bucketName:    appCfg.S3Bucket,
		snapshotKey:   appCfg.CatalogSnapshotKey,
		reportPrefix:  appCfg.ReportPrefix,
		expiryMinutes: appCfg.ReportExpiryMinutes,
	}
}

// GetCatalog loads the catalog snapshot. It implements recommender.CatalogSource.
func (s *Service) GetCatalog(ctx context.Context) ([]*models.Provider, error) {
	data, err := s.DownloadFile(ctx, s.snapshotKey)
	if err != nil {
		return nil, err
	}

	providers, err := utils.ParseCatalog(s.snapshotKey, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog snapshot: %w", err)
	}

	utils.GetLogger().Info("Loaded catalog snapshot",
		zap.String("key", s.snapshotKey),
		zap.Int("providers", len(providers)),
	)

	return providers, nil
}

// SaveCatalog writes a catalog snapshot as JSON.
func (s *Service) SaveCatalog(ctx context.Context, providers []*models.Provider, exportedAt time.Time) error {
	data, err := json.MarshalIndent(models.CatalogSnapshot{
		ExportedAt: &exportedAt,
		Providers:  providers,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog snapshot: %w", err)
	}
	return s.UploadFile(ctx, s.snapshotKey, data, "application/json")
}

// ReportKey returns the object key of a run's report.
func (s *Service) ReportKey(runID string) string {
	return path.Join(s.reportPrefix, runID+".json")
}

// SaveReport stores the run as JSON and returns a presigned download link.
// It implements recommender.ReportSink.
func (s *Service) SaveReport(ctx context.Context, run *models.RecommendationRun) (string, error) {
	data, err := json.Marshal(run)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	key := s.ReportKey(run.RunID)
	if err := s.UploadFile(ctx, key, data, "application/json"); err != nil {
		return "", err
	}

	result, err := s.GeneratePresignedDownloadURL(ctx, key, s.expiryMinutes)
	if err != nil {
		return "", err
	}
	return result.URL, nil
}

// GeneratePresignedDownloadURL creates a presigned URL for downloading files
func (s *Service) GeneratePresignedDownloadURL(ctx context.Context, key string, expiryMinutes int) (*PresignedURLResult, error) {
	if expiryMinutes <= 0 {
		expiryMinutes = 15
	}

	expiry := time.Duration(expiryMinutes) * time.Minute

	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}

	presignedReq, err := s.presigner.PresignGetObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		utils.GetLogger().Error("Failed to generate presigned URL",
			zap.String("bucket", s.bucketName),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return &PresignedURLResult{
		URL:       presignedReq.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// DownloadFile downloads a file from S3
func (s *Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}

	result, err := s.client.GetObject(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to download file from S3",
			zap.String("bucket", s.bucketName),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	return data, nil
}

// UploadFile uploads a file to S3
func (s *Service) UploadFile(ctx context.Context, key string, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to upload file to S3",
			zap.String("bucket", s.bucketName),
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to upload file: %w", err)
	}

	utils.GetLogger().Info("Uploaded file to S3",
		zap.String("bucket", s.bucketName),
		zap.String("key", key),
		zap.Int("size", len(data)),
	)

	return nil
}
