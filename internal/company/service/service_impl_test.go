package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/company/domain"
	"github.com/smallbiznis/hoteldesk/internal/company/repository"
	"github.com/smallbiznis/hoteldesk/internal/media"
	"github.com/smallbiznis/hoteldesk/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubImages struct{ err error }

func (s stubImages) StoreImages(ctx context.Context, folder string, encoded []string) ([]string, error) {
	urls := make([]string, 0, len(encoded))
	for _, e := range encoded {
		url, err := s.StoreImage(ctx, folder, e)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s stubImages) StoreImage(_ context.Context, folder, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "/uploads/" + folder + "/logo.png", nil
}

func (stubImages) RemoveImages(context.Context, []string) {}

func newCompanyService(t *testing.T, images media.ImageStore) domain.Service {
	t.Helper()
	db := dbtest.Open(t, &domain.Profile{})
	return New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		Repo:   repository.Provide(),
		Images: images,
		Clock:  clock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func TestGetReturnsDefaultBeforeSeed(t *testing.T) {
	svc := newCompanyService(t, stubImages{})
	profile, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "IDR", profile.Currency)
	assert.Empty(t, profile.Name)
}

func TestEnsureDefaultIsIdempotent(t *testing.T) {
	svc := newCompanyService(t, stubImages{})
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefault(ctx, "Hotel Kencana"))
	_, err := svc.Update(ctx, domain.UpdateRequest{Name: "Kencana Resort", Currency: "usd"})
	require.NoError(t, err)
	require.NoError(t, svc.EnsureDefault(ctx, "Hotel Kencana"))

	profile, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Kencana Resort", profile.Name)
	assert.Equal(t, "USD", profile.Currency)
}

func TestUpdateValidation(t *testing.T) {
	svc := newCompanyService(t, stubImages{})
	ctx := context.Background()

	_, err := svc.Update(ctx, domain.UpdateRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	_, err = svc.Update(ctx, domain.UpdateRequest{Name: "Hotel", Currency: "RUPIAH"})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
	_, err = svc.Update(ctx, domain.UpdateRequest{Name: "Hotel", Email: "@@"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestUploadLogo(t *testing.T) {
	svc := newCompanyService(t, stubImages{})
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefault(ctx, "Hotel"))

	profile, err := svc.UploadLogo(ctx, "iVBORw0KGgo=")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/company/logo.png", profile.LogoURL)

	failing := newCompanyService(t, stubImages{err: media.ErrInvalidImage})
	_, err = failing.UploadLogo(ctx, "garbage")
	assert.ErrorIs(t, err, media.ErrInvalidImage)
}
