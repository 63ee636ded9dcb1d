package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	names []string
	err   error
}

func (r *recorder) Publish(_ context.Context, name string, _ []byte, _ string) error {
	r.names = append(r.names, name)
	return r.err
}

func TestDirWritesNestedArtifacts(t *testing.T) {
	root := filepath.Join(t.TempDir(), "public")
	dir := NewDir(root)

	require.NoError(t, dir.Publish(context.Background(), "graph/graph-data.json", []byte(`{}`), "application/json"))
	require.NoError(t, dir.Publish(context.Background(), "rss.xml", []byte(`<rss/>`), "application/xml"))

	data, err := os.ReadFile(filepath.Join(root, "graph", "graph-data.json"))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	data, err = os.ReadFile(filepath.Join(root, "rss.xml"))
	require.NoError(t, err)
	assert.Equal(t, `<rss/>`, string(data))
}

func TestDirRejectsEscapingNames(t *testing.T) {
	dir := NewDir(t.TempDir())

	for _, name := range []string{"", "../outside.xml", "graph/../../x", "/"} {
		assert.Error(t, dir.Publish(context.Background(), name, nil, ""), name)
	}
}

func TestChainStopsAtFirstError(t *testing.T) {
	first := &recorder{err: errors.New("disk full")}
	second := &recorder{}

	err := Chain{first, second}.Publish(context.Background(), "rss.xml", nil, "")

	require.Error(t, err)
	assert.Equal(t, []string{"rss.xml"}, first.names)
	assert.Empty(t, second.names)
}

func TestNewSelectsTarget(t *testing.T) {
	ctx := context.Background()
	out := t.TempDir()

	p, err := New(ctx, Config{}, out)
	require.NoError(t, err)
	require.IsType(t, Chain{}, p)
	assert.Len(t, p.(Chain), 1)

	p, err = New(ctx, Config{
		Target:    "minio",
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "site",
	}, out)
	require.NoError(t, err)
	chain := p.(Chain)
	require.Len(t, chain, 2)
	assert.IsType(t, &Dir{}, chain[0])
	assert.IsType(t, &Minio{}, chain[1])

	_, err = New(ctx, Config{Target: "ftp"}, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTarget))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestRemoteTargetsValidateConfig(t *testing.T) {
	_, err := NewS3(context.Background(), Config{Target: TargetS3})
	assert.ErrorContains(t, err, "bucket is required")

	_, err = NewMinio(Config{Bucket: "b", AccessKey: "a", SecretKey: "s"})
	assert.ErrorContains(t, err, "endpoint is required")

	_, err = NewMinio(Config{Endpoint: "localhost:9000", Bucket: "b"})
	assert.ErrorContains(t, err, "access key and secret key")

	_, err = NewMinio(Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"})
	assert.ErrorContains(t, err, "bucket is required")
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "rss.xml", objectKey("", "rss.xml"))
	assert.Equal(t, "site/rss.xml", objectKey("/site/", "rss.xml"))
	assert.Equal(t, "site/v2/graph/graph-data.json", objectKey("site/v2", "/graph/graph-data.json"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "graph/graph-data.json", Key("public", "public/graph/graph-data.json", "fallback.json"))
	assert.Equal(t, "fallback.json", Key("public", "elsewhere/graph.json", "fallback.json"))
	assert.Equal(t, "fallback.json", Key("public", "public", "fallback.json"))
}
