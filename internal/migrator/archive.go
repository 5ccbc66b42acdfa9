package migrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const reportPrefix = "migrations/tasks-userid"

// Archiver stores a finished run summary somewhere durable.
type Archiver interface {
	Archive(ctx context.Context, s *Summary) (string, error)
}

type nopArchiver struct{}

func (nopArchiver) Archive(context.Context, *Summary) (string, error) { return "", nil }

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Archiver uploads summaries as JSON to an S3-compatible bucket.
type S3Archiver struct {
	client putObjectAPI
	bucket string
}

// NewArchiver returns a no-op archiver when no bucket is configured.
func NewArchiver(ctx context.Context, rc ReportConfig) (Archiver, error) {
	if rc.Bucket == "" {
		return nopArchiver{}, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(rc.Region)}
	if rc.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(rc.AccessKey, rc.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if rc.Endpoint != "" {
			o.BaseEndpoint = aws.String(rc.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{client: client, bucket: rc.Bucket}, nil
}

// ReportKey is migrations/tasks-userid/<yyyy>/<mm>/<dd>/<run-id>.json,
// dated by the run start.
func ReportKey(s *Summary) string {
	d := s.StartedAt.UTC()
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s.json", reportPrefix, d.Year(), int(d.Month()), d.Day(), s.RunID)
}

func (a *S3Archiver) Archive(ctx context.Context, s *Summary) (string, error) {
	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	key := ReportKey(s)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}

	return key, nil
}
