// AngelaMos | 2026
// s3.go

package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rgrams-coder/aicmmlr/internal/config"
)

// S3Store uploads to any S3-compatible bucket. A custom endpoint switches to
// path-style addressing for MinIO and R2.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("s3 bucket is empty")
	}

	region := cfg.S3Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		if cfg.S3Endpoint != "" {
			publicURL = joinURL(cfg.S3Endpoint, cfg.S3Bucket)
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, region)
		}
	}

	return &S3Store{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: publicURL,
		now:       time.Now,
	}, nil
}

func (s *S3Store) Put(
	ctx context.Context,
	prefix, fileName string,
	body io.Reader,
) (Object, error) {
	key := ObjectKey(prefix, fileName, s.now())
	contentType := ContentType(fileName)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}

	size := seekSize(body)
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return Object{}, fmt.Errorf("put %s: %w", key, err)
	}

	return Object{
		Key:         key,
		URL:         joinURL(s.publicURL, key),
		FileName:    fileName,
		ContentType: contentType,
		Size:        max(size, 0),
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// seekSize reports the remaining length of a seekable body, or -1.
func seekSize(body io.Reader) int64 {
	rs, ok := body.(io.Seeker)
	if !ok {
		return -1
	}
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	end, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return -1
	}
	if _, err := rs.Seek(cur, io.SeekStart); err != nil {
		return -1
	}
	return end - cur
}
