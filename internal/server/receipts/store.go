// Package receipts archives withdrawal receipts to S3-compatible object
// storage. Archiving happens after the withdrawal has committed and never
// affects its outcome.
package receipts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/reviewvault/internal/server/config"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
)

// Store persists a receipt somewhere outside the database.
type Store interface {
	Put(ctx context.Context, r *models.WithdrawalReceipt) error
}

// NopStore drops receipts. It is used when no bucket is configured.
type NopStore struct{}

func (NopStore) Put(context.Context, *models.WithdrawalReceipt) error { return nil }

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds a client for the configured S3-compatible endpoint.
func NewS3Store(ctx context.Context, c *sc.Config) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Store{client: client, bucket: c.S3Bucket}, nil
}

// New returns an S3Store when receipts are enabled and a NopStore otherwise.
func New(ctx context.Context, c *sc.Config) (Store, error) {
	if !c.ReceiptsEnabled() {
		return NopStore{}, nil
	}
	return NewS3Store(ctx, c)
}

// Key is the object key a receipt is stored under.
func Key(r *models.WithdrawalReceipt) string {
	d := r.CommittedAt.UTC()
	return fmt.Sprintf("receipts/%s/%04d/%02d/%02d/%s.json", r.Owner, d.Year(), d.Month(), d.Day(), r.ID)
}

func (s *S3Store) Put(ctx context.Context, r *models.WithdrawalReceipt) error {
	body, err := json.Marshal(r)
	if err != nil {
		return err
	}

	key := Key(r)
	_, err = putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
