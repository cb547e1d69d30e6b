package repositories

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"reelstore/internal/models"
)

// ContentStore maps a content item identifier to file bytes.
type ContentStore interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DirContentRepo serves PDFs from a local directory.
type DirContentRepo struct {
	Dir string
}

func (r *DirContentRepo) Open(_ context.Context, name string) (io.ReadCloser, error) {
	// Reject anything that is not a plain file name.
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, models.ErrItemNotFound
	}
	f, err := os.Open(filepath.Join(r.Dir, name))
	if os.IsNotExist(err) {
		return nil, models.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// S3ContentRepo serves PDFs from an S3-compatible object store.
type S3ContentRepo struct {
	svc    *s3.S3
	bucket string
	prefix string
}

func NewS3ContentRepo(accessKey, secretKey, region, endpoint, bucket, prefix string) *S3ContentRepo {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(
			accessKey, secretKey, "",
		),
	}))
	return &S3ContentRepo{svc: s3.New(sess), bucket: bucket, prefix: prefix}
}

func (r *S3ContentRepo) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "" || strings.Contains(name, "/") {
		return nil, models.ErrItemNotFound
	}
	key := name
	if r.prefix != "" {
		key = strings.TrimSuffix(r.prefix, "/") + "/" + name
	}
	out, err := r.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, models.ErrItemNotFound
		}
		return nil, err
	}
	return out.Body, nil
}
