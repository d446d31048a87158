package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"carouselgen/logging"
)

// OpenAIProvider generates images through the OpenAI images endpoint.
//
// Inline b64 payloads are requested, but some OpenAI-compatible backends
// answer with hosted URLs regardless; those are fetched through the
// Downloader.
type OpenAIProvider struct {
	client   *openai.Client
	model    string
	download *Downloader
	log      *logging.Logger
}

// Compile-time interface check.
var _ Provider = (*OpenAIProvider)(nil)

// OpenAIOption configures an OpenAIProvider.
type OpenAIOption func(*OpenAIProvider)

// WithModel overrides the default image model.
func WithModel(model string) OpenAIOption {
	return func(p *OpenAIProvider) {
		if model != "" {
			p.model = model
		}
	}
}

// NewOpenAIProvider builds a provider for the given API key. baseURL and
// httpClient may be empty/nil to use the library defaults.
func NewOpenAIProvider(apiKey, baseURL string, httpClient *http.Client, log *logging.Logger, opts ...OpenAIOption) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	p := &OpenAIProvider{
		client:   openai.NewClientWithConfig(cfg),
		model:    openai.CreateImageModelDallE3,
		download: NewDownloader(httpClient, log),
		log:      log.Named("imagegen"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate sends one image request and returns the decoded artifact.
func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Result, error) {
	size := req.Resolution
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}

	started := time.Now()
	p.log.Debug("sending image request",
		zap.String("model", p.model),
		zap.String("size", size),
		zap.Int("prompt_len", len(req.Prompt)),
	)

	resp, err := p.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          p.model,
		Size:           size,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		genErr := p.classify(err)
		p.log.Warn("image request failed",
			zap.String("kind", genErr.Kind.String()),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return nil, genErr
	}

	if len(resp.Data) == 0 {
		return nil, &GenerationError{Kind: ErrorTerminal, Message: "empty response: no images returned"}
	}

	result := &Result{}
	for _, item := range resp.Data {
		switch {
		case item.B64JSON != "":
			data, decErr := base64.StdEncoding.DecodeString(item.B64JSON)
			if decErr != nil {
				return nil, &GenerationError{
					Kind:    ErrorTerminal,
					Message: fmt.Sprintf("decoding image payload: %v", decErr),
				}
			}
			result.Artifacts = append(result.Artifacts, Artifact{Data: data, Format: "png"})
		case item.URL != "":
			// Some OpenAI-compatible endpoints ignore the b64 response
			// format and return a hosted URL instead.
			artifact, fetchErr := p.download.Fetch(ctx, item.URL)
			if fetchErr != nil {
				return nil, Classify(fetchErr)
			}
			result.Artifacts = append(result.Artifacts, *artifact)
		default:
			continue
		}
		if item.RevisedPrompt != "" && result.Text == "" {
			result.Text = item.RevisedPrompt
		}
	}
	if len(result.Artifacts) == 0 {
		return nil, &GenerationError{Kind: ErrorTerminal, Message: "response contained no image data"}
	}

	p.log.Info("image generated",
		zap.Int("artifacts", len(result.Artifacts)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// classify maps an openai client error onto a GenerationError. API errors
// carry an HTTP status; anything without one is treated as a transport fault
// unless the message itself names a server error.
func (p *OpenAIProvider) classify(err error) *GenerationError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		kind := ErrorTerminal
		if apiErr.HTTPStatusCode >= 500 || apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			kind = ErrorTransient
		}
		return &GenerationError{
			Kind:    kind,
			Message: fmt.Sprintf("status code: %d, message: %s", apiErr.HTTPStatusCode, apiErr.Message),
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		kind := ErrorTerminal
		if reqErr.HTTPStatusCode >= 500 {
			kind = ErrorTransient
		}
		return &GenerationError{Kind: kind, Message: err.Error()}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &GenerationError{Kind: ErrorTransport, Message: err.Error()}
	}
	if IsTransientMessage(err.Error()) {
		return &GenerationError{Kind: ErrorTransient, Message: err.Error()}
	}
	if strings.Contains(err.Error(), "connection") || strings.Contains(err.Error(), "EOF") {
		return &GenerationError{Kind: ErrorTransport, Message: err.Error()}
	}
	return &GenerationError{Kind: ErrorTerminal, Message: err.Error()}
}
