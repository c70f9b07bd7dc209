// Package s3 keeps component photos in an S3-compatible bucket (AWS S3 or MinIO).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/RamonCharlles/Gestao-componentes/internal/attachment"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

const defaultRegion = "us-east-1"

type Config struct {
	Region   string
	Bucket   string
	Prefix   string
	Endpoint string // optional, MinIO and friends
	// Optional; falls back to the default credentials chain.
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

type store struct {
	client *s3.Client
	bucket string
	prefix string
	now    func() time.Time
}

func NewStore(ctx context.Context, cfg Config) (*store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return newStore(client, cfg.Bucket, cfg.Prefix), nil
}

func newStore(client *s3.Client, bucket, prefix string) *store {
	return &store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// Store uploads content under a fresh key and returns that key. Objects are
// never overwritten.
func (s *store) Store(ctx context.Context, content io.Reader, suggestedName string) (string, error) {
	key := path.Join(s.prefix, attachment.StorageName(suggestedName, s.now()))

	body, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("read attachment: %w", err)
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key})
	if err == nil {
		return "", fmt.Errorf("attachment %s already exists", key)
	}
	if !isNotFound(err) {
		return "", fmt.Errorf("head attachment %s: %w", key, err)
	}

	input := &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &key,
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put attachment %s: %w", key, err)
	}

	return key, nil
}

func (s *store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("head attachment %s: %w", key, err)
}

func (s *store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", model.ErrAttachmentNotFound, key)
		}
		return nil, fmt.Errorf("get attachment %s: %w", key, err)
	}
	return out.Body, nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return fmt.Errorf("delete attachment %s: %w", key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var re interface{ HTTPStatusCode() int }
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
