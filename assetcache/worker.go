package assetcache

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Worker manages the storefront's offline shell: a versioned bucket of core
// page and asset URLs, served network-first with the cache as fallback.
type Worker struct {
	store   BucketStore
	version string
	origin  string
	urls    []string
	client  *http.Client
}

func NewWorker(store BucketStore, version, origin string, urls []string) *Worker {
	return &Worker{
		store:   store,
		version: version,
		origin:  origin,
		urls:    urls,
		client:  &http.Client{},
	}
}

// Install pre-populates the current bucket from the origin. Individual asset
// failures are logged and skipped; the shell serves what it managed to fetch.
func (w *Worker) Install(ctx context.Context) {
	log.Printf("[Asset Cache] Installing bucket %s", w.version)

	for _, path := range w.urls {
		asset, err := w.fetch(ctx, path)
		if err != nil {
			log.Printf("[Asset Cache] Skipping %s: %v", path, err)
			continue
		}
		if err := w.store.Put(ctx, w.version, path, asset); err != nil {
			log.Printf("[Asset Cache] Failed to cache %s: %v", path, err)
		}
	}
}

// Activate deletes every bucket from previous versions. It runs at boot so
// the new version takes over immediately rather than on next load.
func (w *Worker) Activate(ctx context.Context) {
	log.Printf("[Asset Cache] Activating bucket %s", w.version)

	if err := w.store.DropOthers(ctx, w.version); err != nil {
		log.Printf("[Asset Cache] Failed to drop old buckets: %v", err)
	}
}

// Handler serves intercepted asset requests network-first: a live origin
// response refreshes the cached copy opportunistically; on origin failure the
// cached copy is served; 504 when neither exists.
func (w *Worker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		path := c.Request.URL.Path

		asset, err := w.fetch(ctx, path)
		if err == nil {
			if putErr := w.store.Put(ctx, w.version, path, asset); putErr != nil {
				log.Printf("[Asset Cache] Failed to refresh %s: %v", path, putErr)
			}
			c.Data(http.StatusOK, asset.ContentType, asset.Body)
			return
		}

		cached, ok, getErr := w.store.Get(ctx, w.version, path)
		if getErr != nil {
			log.Printf("[Asset Cache] Cache read failed for %s: %v", path, getErr)
		}
		if ok {
			c.Data(http.StatusOK, cached.ContentType, cached.Body)
			return
		}

		c.Status(http.StatusGatewayTimeout)
	}
}

func (w *Worker) fetch(ctx context.Context, path string) (Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.origin+path, nil)
	if err != nil {
		return Asset{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("origin fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Asset{}, fmt.Errorf("origin returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Asset{}, fmt.Errorf("read body: %w", err)
	}

	return Asset{
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
