package services

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/dbx"
	sc "github.com/ganatecnica/obradiary/internal/server/config"
	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/ganatecnica/obradiary/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
	listObjectsV2 = func(c *s3.Client, ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
		return c.ListObjectsV2(ctx, in, optFns...)
	}
)

// DocumentService keeps project document metadata in the database and the
// content in an S3-compatible bucket, reached through presigned URLs.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewDocumentService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		now:         time.Now,
	}
}

// ProjectPrefix is the key prefix holding a project's documents.
func ProjectPrefix(projectID string) string {
	return "proyectos/" + projectID + "/"
}

// StorageKey builds a unique object key for a document of the project.
func StorageKey(projectID, fileName string) string {
	return fmt.Sprintf("%s%v-%s", ProjectPrefix(projectID), uuid.New(), fileName)
}

func (s *DocumentService) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func (s *DocumentService) getPresignClient() (*s3.PresignClient, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}
	return newS3PresignClient(client), nil
}

func (s *DocumentService) presignPut(ctx context.Context, key, contentType string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := presignPutObject(presignClient, ctx, in, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (s *DocumentService) presignGet(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// RequestUpload registers a pending document and returns the presigned URL
// the client must PUT the content to.
func (s *DocumentService) RequestUpload(ctx context.Context, projectID, fileName, contentType string) (*models.UploadTask, error) {
	if err := requireID("id", projectID); err != nil {
		return nil, err
	}
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return nil, fmt.Errorf("%w: fileName is required", common.ErrValidation)
	}

	if _, err := s.repomanager.Projects(s.db).Get(ctx, projectID); err != nil {
		return nil, fmt.Errorf("project %s: %w", projectID, err)
	}

	doc := models.Document{
		ID:           uuid.NewString(),
		ProjectID:    projectID,
		FileName:     name,
		ContentType:  contentType,
		StorageKey:   StorageKey(projectID, name),
		UploadStatus: models.UploadPending,
		CreatedAt:    s.now(),
	}

	url, err := s.presignPut(ctx, doc.StorageKey, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.Documents(s.db).Create(ctx, &doc); err != nil {
		return nil, err
	}
	return &models.UploadTask{Document: doc, URL: url}, nil
}

// MarkUploaded completes a pending upload and flags the project as having
// documents, in one transaction.
func (s *DocumentService) MarkUploaded(ctx context.Context, projectID, docID string) error {
	if err := requireID("id", projectID); err != nil {
		return err
	}
	if err := requireID("docId", docID); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Documents(tx).MarkUploaded(ctx, projectID, docID); err != nil {
			return err
		}
		return s.repomanager.Projects(tx).SetHaveDocuments(ctx, projectID)
	})
	if err != nil {
		return fmt.Errorf("error updating document: %w", err)
	}
	return nil
}

func (s *DocumentService) List(ctx context.Context, projectID string) ([]*models.Document, error) {
	if err := requireID("id", projectID); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Projects(s.db).Get(ctx, projectID); err != nil {
		return nil, fmt.Errorf("project %s: %w", projectID, err)
	}
	return s.repomanager.Documents(s.db).ListByProject(ctx, projectID)
}

// DownloadURL returns a presigned GET URL for the document's content.
func (s *DocumentService) DownloadURL(ctx context.Context, projectID, docID string) (string, error) {
	if err := requireID("id", projectID); err != nil {
		return "", err
	}
	if err := requireID("docId", docID); err != nil {
		return "", err
	}

	doc, err := s.repomanager.Documents(s.db).Get(ctx, projectID, docID)
	if err != nil {
		return "", fmt.Errorf("error getting document: %w", err)
	}
	return s.presignGet(ctx, doc.StorageKey)
}

// ListObjects lists the object keys stored under the project's prefix,
// following continuation tokens.
func (s *DocumentService) ListObjects(ctx context.Context, projectID string) ([]string, error) {
	if err := requireID("id", projectID); err != nil {
		return nil, err
	}

	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	keys := []string{}
	in := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.config.S3Bucket),
		Prefix: aws.String(ProjectPrefix(projectID)),
	}
	for {
		out, err := listObjectsV2(client, ctx, in)
		if err != nil {
			return nil, err
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			return keys, nil
		}
		in.ContinuationToken = out.NextContinuationToken
	}
}
