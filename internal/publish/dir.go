package publish

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Dir writes artifacts below a local directory.
type Dir struct {
	Root string
}

func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

func (d *Dir) Publish(_ context.Context, name string, body []byte, _ string) error {
	if err := validName(name); err != nil {
		return err
	}

	dest := filepath.Join(d.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", dest)
	}
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", dest)
	}

	logPublished(TargetDir, dest, len(body))
	return nil
}
