// Package genimage calls the hosted generative-image API that crops a
// named clothing article out of a photo. The API is treated as an
// opaque remote call: image plus text in, zero or one image out.
package genimage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash-image-preview"

	requestTimeout = 2 * time.Minute
	maxAttempts    = 3
)

// ErrNoImage is returned when the model answered without an inline
// image, which happens when it could not find the article in the photo.
var ErrNoImage = errors.New("no image in model response")

// Client talks to the generateContent endpoint of a hosted image model.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	retryDelay time.Duration
}

// NewClient returns a client for the given API key. Empty model or
// baseURL select the defaults.
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		retryDelay: 2 * time.Second,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"` // base64 on the wire
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// ExtractArticle sends the photo and the article prompt to the model
// and returns the bytes of the first image part of the response.
// Returns ErrNoImage when the model declined to produce one.
func (c *Client) ExtractArticle(ctx context.Context, article, mimeType string, photo []byte) ([]byte, error) {
	if c.apiKey == "" {
		return nil, errors.New("generative image API key not configured")
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: articlePrompt(article)},
				{InlineData: &inlineData{MIMEType: mimeType, Data: photo}},
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	body, err := c.post(ctx, url, payload)
	if err != nil {
		return nil, err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, ErrNoImage
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData.Data, nil
		}
	}
	return nil, ErrNoImage
}

// post sends the request, retrying a bounded number of times on
// transport errors, rate limiting, and server-side failures.
func (c *Client) post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("send request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("received status %d from image API", resp.StatusCode)
		default:
			return nil, fmt.Errorf("received status %d from image API", resp.StatusCode)
		}
	}
	return nil, lastErr
}

func articlePrompt(article string) string {
	return fmt.Sprintf("I'm going to send you a picture of a %s, i want you to remove the rest of the image and only show the %s. "+
		"Remove any people, pets, or other objects that are not the %s. "+
		"I'm trying to make an app that will show all the things in your closet. "+
		"If you can't find the article, don't return an image.", article, article, article)
}
