package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vtree/internal/errors"
)

type fakeS3 struct {
	objects map[string]string
	calls   []string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	name := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.calls = append(f.calls, name)
	body, ok := f.objects[name]
	if !ok {
		return nil, fmt.Errorf("NoSuchKey: %s", name)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSource(t *testing.T) {
	path := writeFile(t, "tree.json", `{"tag": "p"}`)

	data, err := FileSource{}.Open(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `{"tag": "p"}`, string(data))

	data, err = FileSource{}.Open(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, `{"tag": "p"}`, string(data))
}

func TestFileSourceErrors(t *testing.T) {
	_, err := FileSource{}.Open(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.HasCode(err, "E031"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := writeFile(t, "big.json", strings.Repeat("x", 32))
	_, err = FileSource{MaxBytes: 16}.Open(context.Background(), path)
	assert.True(t, errors.HasCode(err, "E031"))
	assert.Contains(t, err.Error(), "exceeds 16 bytes")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileSource{}.Open(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseS3Ref(t *testing.T) {
	testCases := []struct {
		ref    string
		bucket string
		key    string
		ok     bool
	}{
		{"s3://docs/tree.json", "docs", "tree.json", true},
		{"s3://docs/a/b/tree.yaml", "docs", "a/b/tree.yaml", true},
		{"s3://docs", "", "", false},
		{"s3:///tree.json", "", "", false},
		{"docs/tree.json", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.ref, func(t *testing.T) {
			bucket, key, err := ParseS3Ref(tc.ref)
			if !tc.ok {
				assert.True(t, errors.HasCode(err, "E031"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.bucket, bucket)
			assert.Equal(t, tc.key, key)
		})
	}
}

func TestS3Source(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"docs/a/tree.json": `{"tag": "div"}`}}
	src := &S3Source{Client: fake}

	data, err := src.Open(context.Background(), "s3://docs/a/tree.json")
	require.NoError(t, err)
	assert.Equal(t, `{"tag": "div"}`, string(data))
	assert.Equal(t, []string{"docs/a/tree.json"}, fake.calls)

	_, err = src.Open(context.Background(), "s3://docs/missing.json")
	assert.True(t, errors.HasCode(err, "E031"))
	assert.Contains(t, err.Error(), "NoSuchKey")
}

func TestS3SourceLimit(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"docs/big.json": strings.Repeat("x", 64)}}
	src := &S3Source{Client: fake, MaxBytes: 8}

	_, err := src.Open(context.Background(), "s3://docs/big.json")
	assert.True(t, errors.HasCode(err, "E031"))
}

func TestNewS3Source(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "id")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")

	src := NewS3Source(S3Options{Region: "eu-west-1", Endpoint: "http://localhost:9000", PathStyle: true}, 0)
	client, ok := src.Client.(*s3.Client)
	require.True(t, ok)

	opts := client.Options()
	assert.Equal(t, "eu-west-1", opts.Region)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)

	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "id", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}

func TestEnvCredentialsAnonymous(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	_, ok := envCredentials().(aws.AnonymousCredentials)
	assert.True(t, ok)
}

func TestLoader(t *testing.T) {
	path := writeFile(t, "tree.yaml", "tag: section\nchildren: [hi]\n")
	fake := &fakeS3{objects: map[string]string{"docs/tree.json": `{"tag": "article"}`}}
	loader := NewLoader(nil, 0, &S3Source{Client: fake})

	tree, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "section", tree.Tag)

	tree, err = loader.Load(context.Background(), "s3://docs/tree.json")
	require.NoError(t, err)
	assert.Equal(t, "article", tree.Tag)
}

func TestLoaderErrors(t *testing.T) {
	loader := NewLoader(nil, 0, nil)

	_, err := loader.Load(context.Background(), "s3://docs/tree.json")
	assert.True(t, errors.HasCode(err, "E031"))

	path := writeFile(t, "bad.json", `{"tag": 1}`)
	_, err = loader.Load(context.Background(), path)
	require.True(t, errors.HasCode(err, "E030"))

	var ve *errors.VtreeError
	require.True(t, errors.As(err, &ve))
	assert.True(t, strings.HasPrefix(ve.Detail, path+": "), ve.Detail)
}

func TestScheme(t *testing.T) {
	assert.Equal(t, "file", Scheme("tree.json"))
	assert.Equal(t, "file", Scheme("file:///tmp/tree.json"))
	assert.Equal(t, "s3", Scheme("S3://bucket/key"))
	assert.Equal(t, "file", Scheme("://x"))
}
