package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const defaultTimeout = 60 * time.Second

// ObjectFetcher is the slice of the S3 client the loader needs.
type ObjectFetcher interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Loader interface {
	Load(ctx context.Context, src domain.Source) (*domain.RawTable, error)
}

type Options struct {
	// Timeout bounds a single remote or S3 fetch. Defaults to 60s.
	Timeout time.Duration
	Client  *http.Client
	Objects ObjectFetcher
}

type loader struct {
	client  *http.Client
	timeout time.Duration

	s3Once  sync.Once
	s3Err   error
	objects ObjectFetcher
}

func NewLoader(opts Options) Loader {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}

	return &loader{
		client:  client,
		timeout: timeout,
		objects: opts.Objects,
	}
}

func (l *loader) Load(ctx context.Context, src domain.Source) (*domain.RawTable, error) {
	logger := zerolog.Ctx(ctx)

	var (
		payload []byte
		err     error
	)

	switch src.Kind {
	case domain.SourceKindLocal:
		payload, err = l.readLocal(src.Location)
	case domain.SourceKindRemote:
		payload, err = l.fetchRemote(ctx, src.Location)
	case domain.SourceKindS3:
		payload, err = l.fetchObject(ctx, src.Location)
	case domain.SourceKindInline:
		payload = src.Payload
	default:
		return nil, fmt.Errorf("unsupported source kind: %s", src.Kind)
	}
	if err != nil {
		return nil, err
	}

	name := src.Name
	if name == "" {
		name = baseName(src.Location)
	}

	name, payload, err = decompress(name, payload)
	if err != nil {
		return nil, err
	}

	table, err := parseTable(name, payload)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("source", name).
		Int("columns", len(table.Header)).
		Int("rows", len(table.Rows)).
		Msg("dataset loaded")

	return table, nil
}

func (l *loader) readLocal(location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, location)
		}
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

func (l *loader) fetchRemote(ctx context.Context, location string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", location, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, location)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrSourceUnreachable, location, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
	}
	return data, nil
}

func (l *loader) fetchObject(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := splitS3URI(location)
	if err != nil {
		return nil, err
	}

	fetcher, err := l.objectFetcher(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	out, err := fetcher.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		var noBucket *s3types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, location)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
	}
	return data, nil
}

func (l *loader) objectFetcher(ctx context.Context) (ObjectFetcher, error) {
	l.s3Once.Do(func() {
		if l.objects != nil {
			return
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			l.s3Err = fmt.Errorf("unable to load AWS SDK config: %w", err)
			return
		}
		l.objects = s3.NewFromConfig(cfg)
	})
	if l.s3Err != nil {
		return nil, l.s3Err
	}
	return l.objects, nil
}

func splitS3URI(uri string) (string, string, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("invalid s3 uri %q: missing s3:// prefix", uri)
	}

	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 uri %q: expected s3://bucket/key", uri)
	}
	return bucket, key, nil
}

func baseName(location string) string {
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Path != "" {
		return path.Base(u.Path)
	}
	return filepath.Base(location)
}

func parseTable(name string, data []byte) (*domain.RawTable, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrBadFormat, name)
	}

	// Excel exports often carry a UTF-8 BOM.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		r.Comma = '\t'
	}

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadFormat, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrBadFormat, err)
		}
		switch {
		case len(rec) < len(header):
			padded := make([]string, len(header))
			copy(padded, rec)
			rec = padded
		case len(rec) > len(header):
			rec = rec[:len(header)]
		}
		rows = append(rows, rec)
	}

	return &domain.RawTable{Name: name, Header: header, Rows: rows}, nil
}
