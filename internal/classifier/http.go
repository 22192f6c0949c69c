package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClient - реализация Service поверх HTTP API инференс-сервиса.
// Каждый вызов - POST с base64-кадром, ответ - JSON с результатом
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type imageRequest struct {
	Image string `json:"image"`
}

type framesRequest struct {
	Images []string `json:"images"`
}

type embeddingResponse struct {
	Embedding []float64 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// post выполняет запрос к инференс-сервису и декодирует ответ в out
func (c *HTTPClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("classifier request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	// 422 означает, что сервис не нашел пригодного лица в кадре
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return fmt.Errorf("classifier %s: %w", path, ErrExtractionFailed)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("classifier %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode classifier response from %s: %w", path, err)
	}
	return nil
}

func encodeImage(image []byte) string {
	return base64.StdEncoding.EncodeToString(image)
}

func (c *HTTPClient) ExtractEmbedding(ctx context.Context, image []byte) ([]float64, error) {
	var resp embeddingResponse
	if err := c.post(ctx, "/extract-embedding", imageRequest{Image: encodeImage(image)}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding: %w", ErrExtractionFailed)
	}
	return resp.Embedding, nil
}

func (c *HTTPClient) ClassifyEyeState(ctx context.Context, image []byte) (*EyeLandmarks, error) {
	var resp EyeLandmarks
	if err := c.post(ctx, "/eye-landmarks", imageRequest{Image: encodeImage(image)}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ClassifyTexture(ctx context.Context, image []byte) (*TextureResult, error) {
	var resp TextureResult
	if err := c.post(ctx, "/classify-texture", imageRequest{Image: encodeImage(image)}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ClassifyEmotion(ctx context.Context, image []byte) (*EmotionResult, error) {
	var resp EmotionResult
	if err := c.post(ctx, "/classify-emotion", imageRequest{Image: encodeImage(image)}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) AnalyzeFrames(ctx context.Context, images [][]byte) (*FrameAnalysis, error) {
	encoded := make([]string, 0, len(images))
	for _, img := range images {
		encoded = append(encoded, encodeImage(img))
	}

	var resp FrameAnalysis
	if err := c.post(ctx, "/analyze-frames", framesRequest{Images: encoded}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
