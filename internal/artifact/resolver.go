package artifact

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// signedURLTTL is the expiry of presigned bucket URLs. Each URL serves
// exactly one request, so it only needs to outlive the fetch itself.
const signedURLTTL = 60 * time.Second

// Config carries the card source settings read once at startup. Only the
// fields of the selected source variant are consulted.
type Config struct {
	// Dir is the local card directory (local variant).
	Dir string

	// Endpoint is the S3-compatible storage endpoint as host[:port]
	// (bucket variant). Empty means the bucket variant is unconfigured.
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	PublicBucket bool
	UseSSL       bool

	// RemoteBaseURL is the origin prefix cards are fetched from (remote
	// variant). Empty means the remote variant is unconfigured.
	RemoteBaseURL string
}

// Resolver resolves a card name to a fetchable source. Implementations
// are safe for concurrent use; resolution happens fresh on every request.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Source, error)
}

// NewResolver returns the resolver for the given source variant: "local",
// "bucket" or "remote". Missing variant configuration does not fail here;
// it surfaces as ErrConfiguration per request so the rest of the service
// (health, admin) stays up.
func NewResolver(source string, cfg Config) (Resolver, error) {
	switch source {
	case "local":
		return &LocalResolver{Dir: cfg.Dir}, nil
	case "bucket":
		return NewBucketResolver(cfg)
	case "remote":
		return &RemoteResolver{BaseURL: cfg.RemoteBaseURL}, nil
	default:
		return nil, fmt.Errorf("unknown card source %q: must be 'local', 'bucket' or 'remote'", source)
	}
}

// LocalResolver serves cards from a directory on local disk. The legacy
// single-card deployment is this resolver with one file in the directory.
type LocalResolver struct {
	Dir string
}

// Resolve maps name to {Dir}/{name}.vcf. The file must exist at resolve
// time; the streamer handles the race of it disappearing before open.
func (r *LocalResolver) Resolve(_ context.Context, name string) (Source, error) {
	path := filepath.Join(r.Dir, name+Extension)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Source{}, ErrNotFound
		}
		return Source{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Source{Kind: SourceLocal, Path: path}, nil
}

// BucketResolver serves cards from one S3-compatible bucket. For public
// buckets the source URL is computed locally; for private buckets a fresh
// presigned GET URL is obtained from the provider on every request.
type BucketResolver struct {
	client *minio.Client
	cfg    Config
}

// NewBucketResolver builds the shared storage client. An unset endpoint
// is not an error here — the resolver is returned without a client and
// answers ErrConfiguration per request.
func NewBucketResolver(cfg Config) (*BucketResolver, error) {
	if cfg.Endpoint == "" {
		log.Warn().Msg("resolver: S3_ENDPOINT not set, card endpoints will answer configuration errors")
		return &BucketResolver{cfg: cfg}, nil
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing storage client for %s: %w", cfg.Endpoint, err)
	}
	return &BucketResolver{client: client, cfg: cfg}, nil
}

func (r *BucketResolver) Resolve(ctx context.Context, name string) (Source, error) {
	if r.client == nil || r.cfg.Bucket == "" {
		return Source{}, ErrConfiguration
	}

	key := name + Extension

	if r.cfg.PublicBucket {
		scheme := "https"
		if !r.cfg.UseSSL {
			scheme = "http"
		}
		return Source{
			Kind: SourceRemote,
			URL:  fmt.Sprintf("%s://%s/%s/%s", scheme, r.cfg.Endpoint, r.cfg.Bucket, key),
		}, nil
	}

	signed, err := r.client.PresignedGetObject(ctx, r.cfg.Bucket, key, signedURLTTL, url.Values{})
	if err != nil {
		return Source{}, fmt.Errorf("signing URL for %s: %v: %w", key, err, ErrUpstream)
	}
	return Source{Kind: SourceRemote, URL: signed.String()}, nil
}

// RemoteResolver serves cards from a third-party HTTP origin. Resolution
// is pure string concatenation; the origin itself reports missing cards.
type RemoteResolver struct {
	BaseURL string
}

func (r *RemoteResolver) Resolve(_ context.Context, name string) (Source, error) {
	if r.BaseURL == "" {
		return Source{}, ErrConfiguration
	}
	base := strings.TrimSuffix(r.BaseURL, "/")
	return Source{Kind: SourceRemote, URL: base + "/" + name + Extension}, nil
}
