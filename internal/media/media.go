// Package media decodes uploaded images, shrinks them and stores them.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"go.uber.org/zap"
)

var (
	ErrInvalidImage  = errors.New("invalid_image")
	ErrImageTooLarge = errors.New("image_too_large")
	ErrTooManyImages = errors.New("too_many_images")
	ErrMissingImages = errors.New("missing_images")
)

type Service struct {
	storage  Storage
	settings *config.SettingsHolder
	clock    clock.Clock
	log      *zap.Logger
}

func NewService(storage Storage, settings *config.SettingsHolder, clk clock.Clock, log *zap.Logger) *Service {
	return &Service{
		storage:  storage,
		settings: settings,
		clock:    clk,
		log:      log.Named("media.service"),
	}
}

// StoreImages decodes, compresses and stores between one and the configured
// maximum number of images. Each input is a data URL or bare base64.
func (s *Service) StoreImages(ctx context.Context, folder string, encoded []string) ([]string, error) {
	if len(encoded) == 0 {
		return nil, ErrMissingImages
	}
	if limit := s.settings.Get().Media.MaxImages; limit > 0 && len(encoded) > limit {
		return nil, ErrTooManyImages
	}

	urls := make([]string, 0, len(encoded))
	for _, raw := range encoded {
		url, err := s.StoreImage(ctx, folder, raw)
		if err != nil {
			s.RemoveImages(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// StoreImage stores a single image and returns its URL.
func (s *Service) StoreImage(ctx context.Context, folder, encoded string) (string, error) {
	data, err := DecodeBase64Image(encoded)
	if err != nil {
		return "", err
	}
	cfg := s.settings.Get().Media
	if cfg.MaxBytes > 0 && int64(len(data)) > cfg.MaxBytes {
		return "", ErrImageTooLarge
	}

	out, ext, err := Compress(data, cfg.MaxDimension, cfg.JPEGQuality)
	if err != nil {
		return "", err
	}

	id := ulid.MustNew(ulid.Timestamp(s.clock.Now()), ulid.DefaultEntropy())
	name := strings.Trim(folder, "/") + "/" + strings.ToLower(id.String()) + ext
	return s.storage.Save(ctx, name, out)
}

// RemoveImages deletes stored images by URL. Failures are logged only.
func (s *Service) RemoveImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.storage.Delete(ctx, url); err != nil {
			s.log.Warn("failed to remove stored image", zap.String("url", url), zap.Error(err))
		}
	}
}

// DecodeBase64Image accepts "data:image/...;base64,...." or bare base64.
func DecodeBase64Image(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		comma := strings.IndexByte(encoded, ',')
		if comma < 0 || !strings.Contains(encoded[:comma], ";base64") || !strings.HasPrefix(encoded, "data:image/") {
			return nil, ErrInvalidImage
		}
		encoded = encoded[comma+1:]
	}
	if encoded == "" {
		return nil, ErrInvalidImage
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, ErrInvalidImage
		}
	}
	return data, nil
}

// Compress fits the image into maxDimension and re-encodes it. Images with
// transparency stay PNG, everything else becomes JPEG.
func Compress(data []byte, maxDimension, quality int) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", ErrInvalidImage
	}
	if maxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > maxDimension || b.Dy() > maxDimension {
			img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
		}
	}
	if quality <= 0 || quality > 100 {
		quality = 75
	}

	var buf bytes.Buffer
	if format == "png" && hasAlpha(img) {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ".png", nil
	}
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ".jpg", nil
}

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

// ImageStore is the part of Service other packages depend on.
type ImageStore interface {
	StoreImages(ctx context.Context, folder string, encoded []string) ([]string, error)
	StoreImage(ctx context.Context, folder, encoded string) (string, error)
	RemoveImages(ctx context.Context, urls []string)
}
