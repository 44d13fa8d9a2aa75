// Package archive stores finished reviews in an S3-compatible bucket.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/codereviewer/internal/server/config"
	"github.com/dmitrijs2005/codereviewer/internal/server/models"
	"github.com/google/uuid"
)

// Archive persists a finished review.
type Archive interface {
	Save(ctx context.Context, rec *models.ReviewRecord) error
}

// NopArchive discards records. Used when no bucket is configured.
type NopArchive struct{}

func (NopArchive) Save(context.Context, *models.ReviewRecord) error { return nil }

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}
)

type S3Archive struct {
	client *s3.Client
	bucket string
}

// NewS3Archive builds an S3 client with static credentials against the
// configured endpoint (MinIO or AWS).
func NewS3Archive(ctx context.Context, cfg *sc.Config) (*S3Archive, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archive{client: client, bucket: cfg.S3Bucket}, nil
}

// StorageKey returns the object key for rec, partitioned by creation date.
func StorageKey(rec *models.ReviewRecord) string {
	d := rec.CreatedAt
	return fmt.Sprintf("reviews/%d/%d/%d/%s.json", d.Year(), d.Month(), d.Day(), rec.ID)
}

// Save writes rec as a JSON object. A record without an ID gets a fresh one.
func (a *S3Archive) Save(ctx context.Context, rec *models.ReviewRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	key := StorageKey(rec)
	err = putObject(a.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
