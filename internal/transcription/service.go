package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sashabaranov/go-openai"
	"jamesfarrell.me/ytscribe/internal/config"
	"jamesfarrell.me/ytscribe/internal/domain"
)

// Service uploads audio files to an OpenAI-compatible transcription endpoint.
type Service struct {
	credentials config.CredentialProvider
	endpoint    string
	model       string
	httpClient  *http.Client
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithEndpoint sets the full URL of the transcription endpoint.
func WithEndpoint(endpoint string) Option {
	return func(s *Service) {
		s.endpoint = endpoint
	}
}

// WithModel sets the model identifier sent with each upload.
func WithModel(model string) Option {
	return func(s *Service) {
		s.model = model
	}
}

// WithHTTPClient sets the HTTP client used for uploads.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *Service) {
		s.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(credentials config.CredentialProvider, opts ...Option) *Service {
	s := &Service{
		credentials: credentials,
		endpoint:    config.DefaultEndpoint,
		model:       config.DefaultModel,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Uploads are never timed out.
	if s.httpClient == nil {
		s.httpClient = &http.Client{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return s
}

// Transcribe sends the whole file in one multipart request and returns the
// text field of the JSON response exactly as received.
func (s *Service) Transcribe(ctx context.Context, filePath string) (string, error) {
	apiKey, err := s.credentials.APIKey()
	if err != nil {
		if errors.Is(err, domain.ErrConfig) {
			return "", err
		}
		return "", domain.Wrap(domain.ErrConfig, "looking up API key", err)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return "", domain.Wrap(domain.ErrIO, "reading audio file", err)
	}

	body, contentType, err := s.buildForm(filepath.Base(filePath), fileData)
	if err != nil {
		return "", domain.Wrap(domain.ErrRequest, "building request body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		return "", domain.Wrap(domain.ErrRequest, "creating request", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", contentType)

	s.logger.Info("uploading audio",
		"endpoint", s.endpoint,
		"model", s.model,
		"bytes", len(fileData),
		"api_key", config.MaskSecret(apiKey),
	)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", domain.Wrap(domain.ErrRequest, "sending request", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.Wrap(domain.ErrRequest, "reading response", err)
	}

	s.logger.Debug("transcription response received", "status", resp.StatusCode, "bytes", len(respBody))

	return extractText(resp.StatusCode, respBody)
}

func (s *Service) buildForm(fileName string, fileData []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(fileData); err != nil {
		return nil, "", fmt.Errorf("writing audio: %w", err)
	}

	if err := writer.WriteField("model", s.model); err != nil {
		return nil, "", fmt.Errorf("writing model field: %w", err)
	}
	if err := writer.WriteField("response_format", string(openai.AudioResponseFormatJSON)); err != nil {
		return nil, "", fmt.Errorf("writing response_format field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

// extractText pulls the string text field out of a response body. The HTTP
// status is not checked on its own; an error response simply lacks text.
func extractText(status int, body []byte) (string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", domain.Wrap(domain.ErrDecode, "parsing JSON response", err)
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return "", domain.Errorf(domain.ErrSchema, "response is not a JSON object (status %d)", status)
	}

	text, ok := obj["text"].(string)
	if !ok {
		return "", missingText(status, obj, body)
	}

	return text, nil
}

func missingText(status int, obj map[string]any, body []byte) error {
	if msg, ok := obj["error"].(string); ok && msg != "" {
		return domain.Errorf(domain.ErrSchema, "response has no text field (status %d): %s", status, msg)
	}

	var apiErr openai.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil && apiErr.Error.Message != "" {
		return domain.Errorf(domain.ErrSchema, "response has no text field (status %d): %s", status, apiErr.Error.Message)
	}

	return domain.Errorf(domain.ErrSchema, "response has no text field (status %d)", status)
}
