package publish

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
)

// CacheControl is attached to every uploaded object.
const CacheControl = "public, max-age=3600"

// S3 uploads artifacts to an AWS S3 bucket.
type S3 struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewS3 builds an uploader from the default AWS credential chain. Static
// keys in cfg take precedence, and a custom endpoint switches to path
// style addressing.
func NewS3(ctx context.Context, cfg Config) (*S3, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.WithHint(errors.New("s3 bucket is required"), "set publish.bucket in the config file")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   cfg.Prefix,
	}, nil
}

func (s *S3) Publish(ctx context.Context, name string, body []byte, contentType string) error {
	if err := validName(name); err != nil {
		return err
	}

	key := objectKey(s.prefix, name)
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(CacheControl),
	})
	if err != nil {
		return errors.Wrapf(err, "upload s3://%s/%s", s.bucket, key)
	}

	logPublished(TargetS3, key, len(body))
	return nil
}
