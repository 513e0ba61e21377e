package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Soham407/TapCard/internal/artifact"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15"
	androidUA = "Mozilla/5.0 (Linux; Android 13)"

	cardBody = "BEGIN:VCARD\nVERSION:3.0\nFN:Anand\nEND:VCARD\n"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer builds a server over a temp card directory containing
// one card named "anand".
func newTestServer(t *testing.T, mutate func(*ServerOptions)) *Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anand.vcf"), []byte(cardBody), 0o644))

	options := &ServerOptions{
		DevMode:     true,
		Port:        0,
		DefaultCard: "anand",
		BaseURL:     "https://tap.example.com",
		Resolver:    &artifact.LocalResolver{Dir: dir},
		Streamer:    artifact.NewStreamer(time.Second),
	}
	if mutate != nil {
		mutate(options)
	}

	s, err := NewServer(options)
	require.NoError(t, err)
	require.NoError(t, s.RegisterRoutes())
	return s
}

func doRequest(s *Server, method, path, userAgent string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

func TestCardInlineForIphone(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodGet, "/tap/anand", iphoneUA)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cardBody, w.Body.String())
	assert.Equal(t, artifact.MIMEType, w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestCardDownloadForOtherClients(t *testing.T) {
	s := newTestServer(t, nil)

	for _, ua := range []string{androidUA, ""} {
		w := doRequest(s, http.MethodGet, "/tap/anand", ua)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, cardBody, w.Body.String())
		assert.Equal(t, `attachment; filename="anand_Contact.vcf"`, w.Header().Get("Content-Disposition"))
	}
}

func TestCardNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	for _, ua := range []string{iphoneUA, androidUA} {
		w := doRequest(s, http.MethodGet, "/tap/doesnotexist", ua)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Not Found", body["error"])
		assert.NotEmpty(t, body["message"])
	}
}

func TestCardNameSanitization(t *testing.T) {
	s := newTestServer(t, nil)

	// Traversal-style names never reach the resolver and answer exactly
	// like a missing card.
	for _, path := range []string{"/tap/a..b", "/tap/evil%2F..%2Fsecret", "/tap/.hidden"} {
		w := doRequest(s, http.MethodGet, path, androidUA)
		assert.Equal(t, http.StatusNotFound, w.Code, "path %s", path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Not Found", body["error"])
	}
}

func TestLegacyTapServesDefaultCard(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodGet, "/tap", androidUA)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cardBody, w.Body.String())
	assert.Equal(t, `attachment; filename="anand_Contact.vcf"`, w.Header().Get("Content-Disposition"))
}

func TestLegacyTapRedirectVariant(t *testing.T) {
	s := newTestServer(t, func(o *ServerOptions) {
		o.TapRedirect = true
	})

	w := doRequest(s, http.MethodGet, "/tap", androidUA)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tap/anand", w.Header().Get("Location"))
}

func TestUnconfiguredBucketDegradesCardEndpoints(t *testing.T) {
	resolver, err := artifact.NewBucketResolver(artifact.Config{})
	require.NoError(t, err)

	s := newTestServer(t, func(o *ServerOptions) {
		o.Resolver = resolver
	})

	w := doRequest(s, http.MethodGet, "/tap/anand", iphoneUA)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.Contains(t, body["message"], "not configured")

	// Liveness is unaffected by the broken card source.
	w = doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMidStreamFailureTerminatesConnection(t *testing.T) {
	// The upstream flushes part of the card, then dies. The server has
	// already committed a 200, so the only honest signal left is tearing
	// the connection down — the client must never read a clean EOF on a
	// truncated body.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("BEGIN:VCARD\n"))
		w.(http.Flusher).Flush()
		panic(http.ErrAbortHandler)
	}))
	defer upstream.Close()

	s := newTestServer(t, func(o *ServerOptions) {
		o.Resolver = &artifact.RemoteResolver{BaseURL: upstream.URL}
	})
	front := httptest.NewServer(s.Engine)
	defer front.Close()

	resp, err := front.Client().Get(front.URL + "/tap/anand")
	if err != nil {
		// Connection dropped before the response line arrived — also a
		// valid termination.
		return
	}
	defer resp.Body.Close()

	_, readErr := io.ReadAll(resp.Body)
	require.Error(t, readErr, "truncated card must not read as a complete body")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)

	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestServiceDescriptor(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Name      string            `json:"name"`
		Version   string            `json:"version"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "TapCard", body.Name)
	assert.NotEmpty(t, body.Version)
	assert.Contains(t, body.Endpoints, "GET /tap/:name")
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Error              string   `json:"error"`
		Message            string   `json:"message"`
		AvailableEndpoints []string `json:"availableEndpoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body.Error)
	assert.NotEmpty(t, body.AvailableEndpoints)
	assert.Contains(t, body.AvailableEndpoints, "GET /tap")
}

func TestQRCode(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodGet, "/tap/anand/qr", androidUA)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	// PNG magic number
	require.True(t, w.Body.Len() > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes()[:4])
}

func TestQRCodeRejectsInvalidName(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodGet, "/tap/a..b/qr", androidUA)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminPage(t *testing.T) {
	s := newTestServer(t, nil)

	w := doRequest(s, http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "TapCard Admin")
}
