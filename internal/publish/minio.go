package publish

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultRegion = "us-east-1"

// Minio uploads artifacts to an S3-compatible object store. The bucket is
// created on first use when missing.
type Minio struct {
	client *minio.Client
	bucket string
	prefix string
	region string

	initOnce sync.Once
	initErr  error
}

func NewMinio(cfg Config) (*Minio, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.WithHint(errors.New("minio endpoint is required"), "set publish.endpoint in the config file")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, errors.WithHint(errors.New("minio access key and secret key are required"),
			"set publish.access_key and publish.secret_key in the config file")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.WithHint(errors.New("minio bucket is required"), "set publish.bucket in the config file")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init minio client")
	}

	return &Minio{client: client, bucket: bucket, prefix: cfg.Prefix, region: region}, nil
}

func (m *Minio) ensureBucket(ctx context.Context) error {
	m.initOnce.Do(func() {
		exists, err := m.client.BucketExists(ctx, m.bucket)
		if err != nil {
			m.initErr = err
			return
		}
		if exists {
			return
		}
		m.initErr = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.region})
	})
	return m.initErr
}

func (m *Minio) Publish(ctx context.Context, name string, body []byte, contentType string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := m.ensureBucket(ctx); err != nil {
		return errors.Wrapf(err, "ensure bucket %s", m.bucket)
	}

	key := objectKey(m.prefix, name)
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: CacheControl,
	})
	if err != nil {
		return errors.Wrapf(err, "put %s/%s", m.bucket, key)
	}

	logPublished(TargetMinio, key, len(body))
	return nil
}
