package portrait

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

var ErrValidation = errors.New("validation error")

const (
	// Presigned links end up on share cards, so they live longer than a
	// single page view.
	signedURLTTL = 24 * time.Hour

	// Generated portraits are around a megabyte; anything bigger is not a
	// portrait.
	maxPortraitBytes = 20 << 20
)

var contentTypeExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutPortrait(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Service copies a model-generated portrait from its short-lived source URL
// into our own object store and hands back a durable link.
type Service struct {
	storage    ObjectStorage
	httpClient *http.Client
	now        func() time.Time
}

func NewService(storage ObjectStorage, httpClient *http.Client) *Service {
	return &Service{
		storage:    storage,
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (s *Service) Rehost(ctx context.Context, sourceURL string) (string, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return "", ErrValidation
	}
	if s.storage == nil || s.httpClient == nil {
		return "", fmt.Errorf("portrait dependencies are not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}

	body, contentType, err := s.download(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	objectKey, err := buildPortraitObjectKey(sourceURL, contentType, s.now())
	if err != nil {
		return "", fmt.Errorf("build object key: %w", err)
	}

	if err := s.storage.PutPortrait(ctx, objectKey, bytes.NewReader(body), int64(len(body)), contentType); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	hosted, err := s.storage.PresignGet(ctx, objectKey, signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("presign portrait url: %w", err)
	}

	return hosted, nil
}

func (s *Service) download(ctx context.Context, sourceURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download portrait: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected portrait source status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPortraitBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read portrait body: %w", err)
	}
	if len(body) == 0 {
		return nil, "", fmt.Errorf("portrait source returned empty body")
	}
	if len(body) > maxPortraitBytes {
		return nil, "", fmt.Errorf("portrait exceeds %d bytes", maxPortraitBytes)
	}

	contentType := strings.TrimSpace(resp.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return body, contentType, nil
}

func buildPortraitObjectKey(sourceURL, contentType string, at time.Time) (string, error) {
	rnd := make([]byte, 8)
	if _, err := rand.Read(rnd); err != nil {
		return "", err
	}

	ext := ""
	if u, err := url.Parse(sourceURL); err == nil {
		ext = strings.ToLower(path.Ext(u.Path))
	}
	if ext == "" {
		ext = contentTypeExtensions[contentType]
	}
	if ext == "" {
		ext = ".png"
	}

	stamp := at.UTC().Format("20060102T150405")
	return fmt.Sprintf("portraits/%s_%s%s", stamp, hex.EncodeToString(rnd), ext), nil
}
