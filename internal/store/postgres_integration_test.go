//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/jonathan/resume-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestBackend(t *testing.T) *PostgresBackend {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	b, err := NewPostgresBackend(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	// Start from a clean slate for both documents.
	require.NoError(t, b.db.DeleteDocument(context.Background(), ApplicationsDocument))
	require.NoError(t, b.db.DeleteDocument(context.Background(), ProfileDocument))
	return b
}

func TestIntegration_PostgresApplications(t *testing.T) {
	b := getTestBackend(t)
	s := NewApplicationStore(b, testOptions())
	ctx := context.Background()

	_, err := b.Load(ctx, ApplicationsDocument)
	assert.ErrorIs(t, err, ErrNotExist)

	seed(t, s, types.Application{CompanyName: "Acme"}, types.Application{CompanyName: "Beta"})
	_, err = s.UpdateStatus(ctx, 1, types.StatusOffered)
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Offered)
}

func TestIntegration_PostgresCorruptedDocument(t *testing.T) {
	b := getTestBackend(t)
	ctx := context.Background()
	require.NoError(t, b.Save(ctx, ApplicationsDocument, []byte(`[{"company_name":"Acme"}, "junk"]`)))

	entries, err := NewApplicationStore(b, testOptions()).List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := b.Load(ctx, ApplicationsDocument)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "junk")
}

func TestIntegration_PostgresProfile(t *testing.T) {
	b := getTestBackend(t)
	s := NewProfileStore(b, testOptions())
	ctx := context.Background()

	profile, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)

	require.NoError(t, s.Save(ctx, &types.Profile{Name: "Jane", Email: "jane@example.com"}))
	profile, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane", profile.Name)
}
