package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// DefaultMaxBytes is the document size limit used when a source has none.
const DefaultMaxBytes = 1 << 20

// Source reads the raw bytes of a document reference.
type Source interface {
	Open(ctx context.Context, ref string) ([]byte, error)
}

// FileSource reads documents from the local file system.
type FileSource struct {
	// MaxBytes limits the document size. Zero means DefaultMaxBytes.
	MaxBytes int64
}

// Open reads the file at ref. A "file://" prefix is accepted.
func (s FileSource) Open(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(ref, "file://")
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E031").WithDetail(ref).Wrap(err)
	}
	defer f.Close()

	data, err := readLimited(f, s.MaxBytes)
	if err != nil {
		return nil, errors.New("E031").WithDetail(ref).Wrap(err)
	}
	return data, nil
}

// readLimited reads r fully, failing when it holds more than limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("document exceeds %d bytes", limit)
	}
	return data, nil
}

// Loader resolves document references to virtual trees.
type Loader struct {
	// Sources maps a reference scheme ("file", "s3") to its source.
	// References without a scheme use "file".
	Sources map[string]Source

	// Registry resolves component names. Nil means DefaultRegistry.
	Registry *Registry
}

// NewLoader creates a loader reading local files, plus s3:// references
// when s3 is non-nil.
func NewLoader(reg *Registry, maxBytes int64, s3 Source) *Loader {
	l := &Loader{
		Sources:  map[string]Source{"file": FileSource{MaxBytes: maxBytes}},
		Registry: reg,
	}
	if s3 != nil {
		l.Sources["s3"] = s3
	}
	return l
}

// Load reads ref and decodes it. The format follows the extension of ref.
func (l *Loader) Load(ctx context.Context, ref string) (*vdom.VNode, error) {
	scheme := Scheme(ref)
	src, ok := l.Sources[scheme]
	if !ok {
		return nil, errors.New("E031").
			WithDetailf("no source for %q references", scheme).
			WithSuggestion("Configure the S3 section of vtree.json to read s3:// documents")
	}
	data, err := src.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	tree, err := Decode(data, FormatFor(ref), l.Registry)
	if err != nil {
		var ve *errors.VtreeError
		if errors.As(err, &ve) {
			if ve.Detail == "" {
				ve.WithDetail(ref)
			} else {
				ve.WithDetail(ref + ": " + ve.Detail)
			}
		}
		return nil, err
	}
	return tree, nil
}

// Scheme returns the scheme of ref, "file" when it has none.
func Scheme(ref string) string {
	if i := strings.Index(ref, "://"); i > 0 {
		return strings.ToLower(ref[:i])
	}
	return "file"
}
