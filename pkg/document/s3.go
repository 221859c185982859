package document

import (
	"context"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vtree/internal/errors"
)

// GetObjectAPI is the part of the S3 client S3Source uses.
type GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options configures the client built by NewS3Source.
type S3Options struct {
	Region string

	// Endpoint overrides the S3 endpoint, e.g. for MinIO or LocalStack.
	Endpoint string

	// PathStyle addresses buckets as endpoint/bucket instead of
	// bucket.endpoint.
	PathStyle bool
}

// S3Source reads s3://bucket/key references.
type S3Source struct {
	Client GetObjectAPI

	// MaxBytes limits the document size. Zero means DefaultMaxBytes.
	MaxBytes int64
}

// NewS3Source creates a source with an S3 client built from opts.
// Credentials come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// AWS_SESSION_TOKEN; requests are anonymous when they are not set.
func NewS3Source(opts S3Options, maxBytes int64) *S3Source {
	o := s3.Options{
		Region:       opts.Region,
		UsePathStyle: opts.PathStyle,
		Credentials:  envCredentials(),
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return &S3Source{Client: s3.New(o), MaxBytes: maxBytes}
}

func envCredentials() aws.CredentialsProvider {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.AnonymousCredentials{}
	}
	token := os.Getenv("AWS_SESSION_TOKEN")
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    token,
			Source:          "Environment",
		}, nil
	})
}

// Open fetches the object named by ref.
func (s *S3Source) Open(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := ParseS3Ref(ref)
	if err != nil {
		return nil, err
	}

	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("E031").WithDetail(ref).Wrap(err)
	}
	defer out.Body.Close()

	data, err := readLimited(out.Body, s.MaxBytes)
	if err != nil {
		return nil, errors.New("E031").WithDetail(ref).Wrap(err)
	}
	return data, nil
}

// ParseS3Ref splits "s3://bucket/key" into bucket and key.
func ParseS3Ref(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, "s3://")
	if !ok {
		return "", "", errors.New("E031").WithDetailf("%q is not an s3:// reference", ref)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", errors.New("E031").
			WithDetailf("%q needs a bucket and a key", ref).
			WithSuggestion("Use s3://bucket/path/to/tree.json")
	}
	return bucket, key, nil
}
