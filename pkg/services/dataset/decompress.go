package dataset

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// decompress unwraps single-file compression based on the name's
// extension. The returned name has the compression suffix stripped so
// delimiter sniffing still sees the inner extension.
func decompress(name string, data []byte) (string, []byte, error) {
	ext := strings.ToLower(filepath.Ext(name))

	var (
		r   io.Reader
		err error
	)

	switch ext {
	case ".gz":
		r, err = gzip.NewReader(bytes.NewReader(data))
	case ".bz2":
		r = bzip2.NewReader(bytes.NewReader(data))
	case ".zst":
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(bytes.NewReader(data))
		if zr != nil {
			defer zr.Close()
			r = zr
		}
	case ".xz":
		r, err = xz.NewReader(bytes.NewReader(data))
	default:
		return name, data, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrBadFormat, err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrBadFormat, err)
	}

	return strings.TrimSuffix(name, filepath.Ext(name)), out, nil
}
