package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngDataURL(t *testing.T, w, h int, opaque bool) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	alpha := uint8(128)
	if opaque {
		alpha = 255
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 90, A: alpha})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTestService(t *testing.T, settings config.Settings) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	clk := clock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewService(NewLocalStorage(dir, "/uploads"), config.NewStaticSettings(settings), clk, zap.NewNop()), dir
}

func TestStoreImagesShrinksAndConverts(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Media.MaxDimension = 64
	svc, dir := newTestService(t, settings)

	urls, err := svc.StoreImages(context.Background(), "booking-payments", []string{pngDataURL(t, 200, 100, true)})
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.True(t, strings.HasPrefix(urls[0], "/uploads/booking-payments/"))
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))

	raw, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(urls[0], "/uploads/")))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestStoreImageKeepsTransparentPNG(t *testing.T) {
	svc, _ := newTestService(t, config.DefaultSettings())
	url, err := svc.StoreImage(context.Background(), "company", pngDataURL(t, 10, 10, false))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestStoreImagesValidation(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Media.MaxImages = 1
	svc, _ := newTestService(t, settings)
	ctx := context.Background()

	_, err := svc.StoreImages(ctx, "x", nil)
	assert.ErrorIs(t, err, ErrMissingImages)

	img := pngDataURL(t, 4, 4, true)
	_, err = svc.StoreImages(ctx, "x", []string{img, img})
	assert.ErrorIs(t, err, ErrTooManyImages)

	_, err = svc.StoreImages(ctx, "x", []string{"data:text/plain;base64,aGVsbG8="})
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = svc.StoreImages(ctx, "x", []string{base64.StdEncoding.EncodeToString([]byte("not an image"))})
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestStoreImageTooLarge(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Media.MaxBytes = 10
	svc, _ := newTestService(t, settings)
	_, err := svc.StoreImage(context.Background(), "x", pngDataURL(t, 20, 20, true))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(filepath.Join(dir, "uploads"), "/uploads")
	url, err := s.Save(context.Background(), "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/etc/passwd", url)
	_, err = os.Stat(filepath.Join(dir, "uploads", "etc", "passwd"))
	assert.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), url))
}

func TestLocalStorageLocalPath(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "/uploads")

	p, ok := s.LocalPath("/uploads/company/logo.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "company", "logo.png"), p)

	_, ok = s.LocalPath("https://cdn.test/logo.png")
	assert.False(t, ok)
}
