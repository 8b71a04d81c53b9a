// Package images hands out presigned S3 URLs for course image uploads.
package images

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Options struct {
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	BaseEndpoint string
	// Expires is how long a presigned URL stays valid.
	Expires time.Duration
}

type S3Store struct {
	presign *s3.PresignClient
	bucket  string
	expires time.Duration
}

// NewS3Store builds a store against an S3-compatible endpoint (MinIO in
// development) using static credentials.
func NewS3Store(ctx context.Context, opts Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is not set")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	expires := opts.Expires
	if expires <= 0 {
		expires = 15 * time.Minute
	}

	return &S3Store{
		presign: s3.NewPresignClient(client),
		bucket:  opts.Bucket,
		expires: expires,
	}, nil
}

// PresignPut returns a URL that accepts a single PUT of the object at key.
func (s *S3Store) PresignPut(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expires))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
