package output

import (
	"context"
	"errors"
	"image/color"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// fakeS3 records PutObject calls; every other S3API method panics
type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader_Upload(t *testing.T) {
	fake := &fakeS3{}
	u := newS3Uploader(fake, "frames")

	if err := u.Upload(context.Background(), "default/render.png", []byte("png-bytes")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if aws.StringValue(fake.input.Bucket) != "frames" {
		t.Errorf("Expected bucket frames, got %q", aws.StringValue(fake.input.Bucket))
	}
	if aws.StringValue(fake.input.Key) != "default/render.png" {
		t.Errorf("Unexpected key %q", aws.StringValue(fake.input.Key))
	}
	if aws.StringValue(fake.input.ContentType) != "image/png" {
		t.Errorf("Unexpected content type %q", aws.StringValue(fake.input.ContentType))
	}
	if aws.Int64Value(fake.input.ContentLength) != 9 || string(fake.body) != "png-bytes" {
		t.Errorf("Unexpected body %q (length %d)", fake.body, aws.Int64Value(fake.input.ContentLength))
	}
}

func TestS3Uploader_UploadError(t *testing.T) {
	failure := errors.New("access denied")
	u := newS3Uploader(&fakeS3{err: failure}, "frames")

	err := u.Upload(context.Background(), "key.png", []byte{1})
	if !errors.Is(err, failure) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}

func TestNewS3Uploader(t *testing.T) {
	if _, err := NewS3Uploader(S3Options{}); !errors.Is(err, ErrNoBucket) {
		t.Errorf("Expected ErrNoBucket, got %v", err)
	}

	u, err := NewS3Uploader(S3Options{
		AccessKey: "key",
		SecretKey: "secret",
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		Bucket:    "frames",
	})
	if err != nil {
		t.Fatalf("NewS3Uploader: %v", err)
	}
	if u.bucket != "frames" || u.client == nil {
		t.Errorf("Unexpected uploader %+v", u)
	}
}

type memoryUploader struct {
	uploads map[string][]byte
}

func (m *memoryUploader) Upload(_ context.Context, key string, data []byte) error {
	m.uploads[key] = data
	return nil
}

func TestPublish(t *testing.T) {
	m := &memoryUploader{uploads: map[string][]byte{}}
	n, err := Publish(context.Background(), m, "thumb.png", solidImage(2, 2, color.RGBA{1, 2, 3, 255}))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if data := m.uploads["thumb.png"]; len(data) != n || n == 0 {
		t.Errorf("Expected %d uploaded bytes, got %d", n, len(data))
	}
}
