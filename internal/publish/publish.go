// Package publish delivers generated artifacts to their destinations: the
// local output directory and, optionally, an S3 or S3-compatible bucket.
package publish

import (
	"context"
	"path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Paintersrp/modular/internal/logger"
	"github.com/Paintersrp/modular/internal/pathutil"
)

const (
	TargetDir   = "dir"
	TargetS3    = "s3"
	TargetMinio = "minio"
)

// ErrUnknownTarget is returned by New for an unsupported publish target.
var ErrUnknownTarget = errors.New("unknown publish target")

// Publisher stores a named artifact. Names are slash separated and
// relative to the site root, e.g. "graph/graph-data.json".
type Publisher interface {
	Publish(ctx context.Context, name string, body []byte, contentType string) error
}

// Config selects and configures the remote target.
type Config struct {
	Target    string
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// New returns a publisher that always writes into outputDir first and then
// to the configured remote target, if any.
func New(ctx context.Context, cfg Config, outputDir string) (Publisher, error) {
	dir := NewDir(outputDir)

	switch strings.ToLower(strings.TrimSpace(cfg.Target)) {
	case "", TargetDir:
		return Chain{dir}, nil
	case TargetS3:
		remote, err := NewS3(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return Chain{dir, remote}, nil
	case TargetMinio:
		remote, err := NewMinio(cfg)
		if err != nil {
			return nil, err
		}
		return Chain{dir, remote}, nil
	default:
		return nil, errors.WithHintf(
			errors.Wrapf(ErrUnknownTarget, "%q", cfg.Target),
			"publish.target must be one of %s, %s or %s", TargetDir, TargetS3, TargetMinio,
		)
	}
}

// Chain publishes to each publisher in order and stops at the first error.
type Chain []Publisher

func (c Chain) Publish(ctx context.Context, name string, body []byte, contentType string) error {
	for _, p := range c {
		if err := p.Publish(ctx, name, body, contentType); err != nil {
			return err
		}
	}
	return nil
}

// Key returns target's slash separated path relative to outputDir. Paths
// outside outputDir fall back to fallback.
func Key(outputDir, target, fallback string) string {
	rel, err := pathutil.OutputRelative(outputDir, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return fallback
	}
	return rel
}

func objectKey(prefix, name string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	name = strings.TrimLeft(name, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func validName(name string) error {
	clean := path.Clean("/" + name)
	if name == "" || clean == "/" || strings.TrimLeft(clean, "/") != strings.TrimLeft(name, "/") {
		return errors.Newf("invalid artifact name %q", name)
	}
	return nil
}

func logPublished(target, name string, size int) {
	logger.Named("publish").Debugw("published artifact",
		"target", target,
		logger.FieldPath, name,
		"bytes", size,
	)
}
