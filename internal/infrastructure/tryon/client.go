// Package tryon provides a client for the generative image service that
// composites a garment onto a user photo.
package tryon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vyom/tryon-store/internal/core/domain"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com"
	defaultModel    = "gemini-2.5-flash-image"
	defaultTimeout  = 60 * time.Second

	maxGarmentBytes  = 10 << 20
	maxResponseBytes = 40 << 20
)

const prompt = "Generate a photorealistic image of the person in the first image wearing the garment " +
	"shown in the second image. Keep the person's face, pose, body shape and background unchanged. " +
	"Return only the edited image."

// Config holds client configuration.
type Config struct {
	Endpoint string
	Model    string
	APIKey   string
	// Timeout bounds one generation, garment download included.
	Timeout time.Duration
}

// Client is a ports.TryOnRequester backed by the generateContent REST API.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a new Client.
func New(cfg Config, log zerolog.Logger) *Client {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		endpoint: endpoint,
		model:    model,
		apiKey:   cfg.APIKey,
		timeout:  timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// =============================================================================
// Request/Response Types
// =============================================================================

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type generateResponse struct {
	Candidates     []candidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// =============================================================================
// API Methods
// =============================================================================

// Generate composites garmentImage (a URL or data: URL) onto photo. It makes
// exactly one generation request and never retries. Every failure is a
// *domain.ExternalServiceError whose reason can be shown to the user.
func (c *Client) Generate(ctx context.Context, photo domain.Photo, garmentImage string) (*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	garment, err := c.fetchGarment(ctx, garmentImage)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{MIMEType: photo.MIMEType, Data: photo.Data}},
				{InlineData: &inlineData{MIMEType: garment.MIMEType, Data: garment.Data}},
				{Text: prompt},
			},
		}},
		GenerationConfig: generationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	})
	if err != nil {
		return nil, domain.NewExternalServiceError("could not encode try-on request: %v", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewExternalServiceError("could not build try-on request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("model", c.model).Msg("try-on service returned an error")
		return nil, statusError(resp.StatusCode, respBody)
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, domain.NewExternalServiceError("The try-on service returned an unreadable response.")
	}
	return firstImage(result)
}

func (c *Client) fetchGarment(ctx context.Context, ref string) (*domain.Photo, error) {
	if strings.HasPrefix(ref, "data:") {
		p, err := domain.ParseDataURL(ref)
		if err != nil {
			return nil, domain.NewExternalServiceError("The garment image is invalid: %v", err)
		}
		return &p, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, domain.NewExternalServiceError("The garment image address is invalid.")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewExternalServiceError("Could not download the garment image (%s).", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxGarmentBytes+1))
	if err != nil {
		return nil, transportError(err)
	}
	if len(data) > maxGarmentBytes {
		return nil, domain.NewExternalServiceError("The garment image is too large.")
	}
	if len(data) == 0 {
		return nil, domain.NewExternalServiceError("The garment image is empty.")
	}

	mime := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		mime = http.DetectContentType(data)
	}
	return &domain.Photo{MIMEType: mime, Data: data}, nil
}

func firstImage(result generateResponse) (*domain.Photo, error) {
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return nil, domain.NewExternalServiceError("The request was blocked by the try-on service (%s).", result.PromptFeedback.BlockReason)
	}
	if len(result.Candidates) == 0 {
		return nil, domain.NewExternalServiceError("The try-on service returned no result.")
	}

	var text []string
	for _, cand := range result.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && len(p.InlineData.Data) > 0 {
				return &domain.Photo{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data}, nil
			}
			if p.Text != "" {
				text = append(text, strings.TrimSpace(p.Text))
			}
		}
	}

	// The model answered in words only; its text is the most useful reason.
	if len(text) > 0 {
		return nil, &domain.ExternalServiceError{Reason: strings.Join(text, " ")}
	}
	return nil, domain.NewExternalServiceError("The try-on service did not return an image (%s).", result.Candidates[0].FinishReason)
}

func statusError(status int, body []byte) error {
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Error.Message != "" {
		return &domain.ExternalServiceError{Reason: ae.Error.Message}
	}
	return domain.NewExternalServiceError("The try-on service failed with status %d.", status)
}

func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewExternalServiceError("The try-on service took too long to respond. Please try again.")
	}
	if errors.Is(err, context.Canceled) {
		return domain.NewExternalServiceError("The try-on request was cancelled.")
	}
	return domain.NewExternalServiceError("Could not reach the try-on service: %v", err)
}
