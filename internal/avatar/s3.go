package avatar

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage uploads avatars to a bucket (AWS or any S3 compatible endpoint
// such as MinIO) under the "avatars/" prefix.
type S3Storage struct {
	client        putObjectAPI
	bucket        string
	publicBaseURL string
}

type S3Options struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

func NewS3Storage(ctx context.Context, opts S3Options) (*S3Storage, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("avatar: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Storage(client, opts.Bucket, opts.PublicBaseURL), nil
}

func newS3Storage(client putObjectAPI, bucket, publicBaseURL string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, publicBaseURL: publicBaseURL}
}

func (s *S3Storage) Store(ctx context.Context, tempPath, fileName string) (string, error) {
	f, err := os.Open(tempPath)
	if err != nil {
		return "", fmt.Errorf("avatar: open upload: %w", err)
	}
	defer f.Close()

	key := Reference(fileName)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(fileName)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("avatar: upload %s: %w", key, err)
	}

	// Best effort: the upload already succeeded.
	f.Close()
	_ = os.Remove(tempPath)

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return key, nil
}
