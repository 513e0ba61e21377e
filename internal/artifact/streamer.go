package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Streamer pipes a resolved card source to an HTTP response. One Streamer
// is shared by all requests; its outbound client holds no per-request
// state.
type Streamer struct {
	client *http.Client
}

// NewStreamer returns a Streamer whose outbound fetches are bounded by
// timeout. Timeouts surface as ErrUpstream.
func NewStreamer(timeout time.Duration) *Streamer {
	return &Streamer{
		client: &http.Client{Timeout: timeout},
	}
}

// Stream opens src, sets the header scheme for req.Category, and pipes
// the card bytes to w untransformed.
//
// Failures before the first body byte return ErrNotFound, ErrUpstream or
// a wrapped variant, and nothing has been written — the caller can still
// send an error response. A failure mid-pipe returns ErrTransport: the
// status line is already on the wire, so the caller must only log and
// let the connection drop.
func (s *Streamer) Stream(ctx context.Context, w http.ResponseWriter, src Source, req Request) error {
	body, size, err := s.open(ctx, src)
	if err != nil {
		return err
	}
	defer body.Close()

	setDeliveryHeaders(w, req, size)

	if written, err := io.Copy(w, body); err != nil {
		if written == 0 {
			// The body failed before the first byte reached w, so no
			// status is committed yet and the caller can still answer.
			// Undo the delivery headers so the error response is clean.
			clearDeliveryHeaders(w)
			return fmt.Errorf("reading card body for %s: %w", req.Name, ErrUpstream)
		}
		return fmt.Errorf("piping %s after %d bytes: %w", req.Name, written, ErrTransport)
	}
	return nil
}

// open returns a readable body for the source and its size in bytes, or
// -1 when the size is unknown.
func (s *Streamer) open(ctx context.Context, src Source) (io.ReadCloser, int64, error) {
	switch src.Kind {
	case SourceLocal:
		return openLocal(src.Path)
	case SourceRemote:
		return s.openRemote(ctx, src.URL)
	default:
		return nil, -1, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}

func openLocal(path string) (io.ReadCloser, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, -1, ErrNotFound
		}
		return nil, -1, fmt.Errorf("opening %s: %w", path, ErrUpstream)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, -1, fmt.Errorf("stat %s: %w", path, ErrUpstream)
	}
	return f, info.Size(), nil
}

// openRemote issues a GET for the resolved URL. The request carries the
// inbound request's context, so a client disconnect cancels the upstream
// read as well.
func (s *Streamer) openRemote(ctx context.Context, rawURL string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, -1, fmt.Errorf("building card fetch request: %w", ErrUpstream)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", redactURL(rawURL)).Msg("streamer: card fetch failed")
		return nil, -1, fmt.Errorf("fetching card: %w", ErrUpstream)
	}

	if resp.StatusCode != http.StatusOK {
		// Drain so the transport connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, -1, &UpstreamError{StatusCode: resp.StatusCode, URL: redactURL(rawURL)}
	}

	return resp.Body, resp.ContentLength, nil
}

// setDeliveryHeaders applies exactly one header scheme before any body
// byte: inline viewing gets the vCard content type, forced download gets
// an attachment disposition with the computed display filename.
func setDeliveryHeaders(w http.ResponseWriter, req Request, size int64) {
	header := w.Header()
	if req.Category.IsInline() {
		header.Set("Content-Type", MIMEType)
	} else {
		header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", req.Name+DownloadSuffix))
	}
	if size >= 0 {
		header.Set("Content-Length", strconv.FormatInt(size, 10))
	}
}

// clearDeliveryHeaders removes the headers set by setDeliveryHeaders so
// a pre-commit failure can still produce an untainted error response.
func clearDeliveryHeaders(w http.ResponseWriter) {
	header := w.Header()
	header.Del("Content-Type")
	header.Del("Content-Disposition")
	header.Del("Content-Length")
}

// redactURL strips query parameters so presigned credentials never reach
// the logs.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "(unparseable url)"
	}
	u.RawQuery = ""
	return u.String()
}
