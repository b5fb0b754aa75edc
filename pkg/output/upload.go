package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// ErrNoBucket is returned when uploading without a bucket configured
var ErrNoBucket = errors.New("no S3 bucket configured")

// Uploader publishes encoded frames under a key
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte) error
}

// S3Options holds the connection settings for an S3 compatible store
type S3Options struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
}

// S3Uploader uploads PNG frames to a bucket
type S3Uploader struct {
	client s3iface.S3API
	bucket string
}

// NewS3Uploader opens a session against the configured endpoint. An empty
// endpoint uses the AWS default for the region.
func NewS3Uploader(opts S3Options) (*S3Uploader, error) {
	if opts.Bucket == "" {
		return nil, ErrNoBucket
	}
	cfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, ""),
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return newS3Uploader(s3.New(sess), opts.Bucket), nil
}

func newS3Uploader(client s3iface.S3API, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket}
}

// Upload stores data as a PNG object under key
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Publish encodes img and hands it to the uploader
func Publish(ctx context.Context, u Uploader, key string, img image.Image) (int, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return 0, err
	}
	if err := u.Upload(ctx, key, data); err != nil {
		return 0, err
	}
	return len(data), nil
}
