// Package source resolves keyboard definition references — local paths
// or HTTPS URLs — to raw definition bytes, and watches local files for
// live reload.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxDefinitionSize caps remote reads; definitions are small YAML files.
const maxDefinitionSize = 4 << 20

// Loader fetches definition bytes. Fetching is the only long-running
// operation around the core; it never runs on the input-handling path.
type Loader struct {
	client *http.Client
	log    *zap.SugaredLogger
}

func NewLoader(log *zap.SugaredLogger) *Loader {
	return &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

// IsRemote reports whether ref is fetched over HTTP rather than read
// from disk.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Load resolves ref to definition bytes.
func (l *Loader) Load(ctx context.Context, ref string) ([]byte, error) {
	if IsRemote(ref) {
		return l.fetch(ctx, ref)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	l.log.Infow("fetching definition", "url", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch definition: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch definition: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDefinitionSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	l.log.Infow("fetched definition", "url", url, "bytes", len(data))
	return data, nil
}
