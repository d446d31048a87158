package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"carouselgen/logging"
)

// maxDownloadSize caps a single artifact download at 32MB.
const maxDownloadSize = 32 << 20

// Downloader fetches generated images from provider-hosted URLs. Some
// backends return a short-lived URL instead of inline bytes; this turns
// such a response into an Artifact.
type Downloader struct {
	client *http.Client
	log    *logging.Logger
}

// NewDownloader builds a downloader. client may be nil to use a default
// with a 60 second timeout.
func NewDownloader(client *http.Client, log *logging.Logger) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Downloader{
		client: client,
		log:    log.Named("download"),
	}
}

// Fetch downloads the image at url and returns it as an Artifact. Failures
// are classified: connection faults are transport, 5xx responses transient,
// everything else terminal.
func (d *Downloader) Fetch(ctx context.Context, url string) (*Artifact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &GenerationError{Kind: ErrorTerminal, Message: fmt.Sprintf("building download request: %v", err)}
	}

	started := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &GenerationError{Kind: ErrorTransport, Message: fmt.Sprintf("downloading image: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		kind := ErrorTerminal
		if resp.StatusCode >= 500 {
			kind = ErrorTransient
		}
		return nil, &GenerationError{
			Kind:    kind,
			Message: fmt.Sprintf("status code: %d downloading image", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, &GenerationError{Kind: ErrorTransport, Message: fmt.Sprintf("reading image body: %v", err)}
	}
	if len(data) == 0 {
		return nil, &GenerationError{Kind: ErrorTerminal, Message: "downloaded image is empty"}
	}

	d.log.Debug("image downloaded",
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return &Artifact{Data: data, Format: formatFromContentType(resp.Header.Get("Content-Type"))}, nil
}

// formatFromContentType maps a response content type onto an artifact
// format, defaulting to png.
func formatFromContentType(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}
