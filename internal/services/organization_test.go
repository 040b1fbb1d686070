package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
	"attendancebook/internal/repository/kvstore"
)

func newOrgService(t *testing.T) domain.OrganizationService {
	t.Helper()
	return NewOrganizationService(kvstore.NewOrganizationRepository(kv.NewMemoryStore()))
}

func TestOrganizationCreateGeneratesID(t *testing.T) {
	svc := newOrgService(t)

	org, err := svc.Create(context.Background(), domain.CreateOrganizationInput{Name: "  マイ吹奏楽団  "})
	require.NoError(t, err)
	assert.Len(t, org.ID, 10)
	assert.Equal(t, "マイ吹奏楽団", org.Name, "name is trimmed")
	assert.False(t, org.CreatedAt.IsZero())
}

func TestOrganizationCreateValidation(t *testing.T) {
	svc := newOrgService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateOrganizationInput{Name: ""})
	require.Error(t, err)
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "name", ve.Fields[0].Field)

	_, err = svc.Create(ctx, domain.CreateOrganizationInput{
		Name:        strings.Repeat("あ", 101),
		Description: strings.Repeat("x", 501),
	})
	require.Error(t, err)
	ve, ok = domain.AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 2)
}

func TestOrganizationGetUpdateDelete(t *testing.T) {
	svc := newOrgService(t)
	ctx := context.Background()

	org, err := svc.Create(ctx, domain.CreateOrganizationInput{Name: "吹奏楽団"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, org.Name, got.Name)

	desc := "毎週土曜に練習"
	updated, err := svc.Update(ctx, org.ID, domain.UpdateOrganizationInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "吹奏楽団", updated.Name)
	assert.Equal(t, desc, updated.Description)

	removed, err := svc.Delete(ctx, org.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = svc.GetByID(ctx, org.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	removed, err = svc.Delete(ctx, org.ID)
	require.NoError(t, err)
	assert.False(t, removed, "deleting twice is idempotent")
}

func TestOrganizationUpdateMissing(t *testing.T) {
	svc := newOrgService(t)

	name := "新しい名前"
	_, err := svc.Update(context.Background(), "nope", domain.UpdateOrganizationInput{Name: &name})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
