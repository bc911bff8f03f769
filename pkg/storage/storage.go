package storage

import (
	"context"
	"errors"
	"io"
)

// Store is the object-storage surface consumed by the pipeline: read one
// exported object, persist one finalized output.
type Store interface {
	NewReader(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

// Provider selects the backing object store.
type Provider string

const (
	ProviderS3    Provider = "s3"
	ProviderGCS   Provider = "gcs"
	ProviderLocal Provider = "local"
)

// Error constants and variables
const (
	ErrMsgBucketRequired      = "storage: bucket name is required"
	ErrMsgDirRequired         = "storage: local directory is required"
	ErrMsgUnsupportedProvider = "storage: unsupported provider"
	ErrMsgObjectNotExist      = "storage: object does not exist"
)

var (
	ErrBucketRequired      = errors.New(ErrMsgBucketRequired)
	ErrDirRequired         = errors.New(ErrMsgDirRequired)
	ErrUnsupportedProvider = errors.New(ErrMsgUnsupportedProvider)
	ErrObjectNotExist      = errors.New(ErrMsgObjectNotExist)
)

// Config selects and parameterizes a store. Bucket applies to the cloud
// providers, Dir to the local one.
type Config struct {
	Provider Provider
	Bucket   string
	Region   string // s3 only; falls back to the AWS environment
	Profile  string // s3 only; optional shared-config profile
	Dir      string // local only
}

// NewStore builds the configured store.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Provider {
	case ProviderS3:
		return NewS3Store(ctx, cfg)
	case ProviderGCS:
		return NewGCSStore(ctx, cfg)
	case ProviderLocal:
		return NewLocalStore(cfg.Dir)
	default:
		return nil, ErrUnsupportedProvider
	}
}
