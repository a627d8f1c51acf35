package repository

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuwebai/tuweb-backend/internal/users/domain"
)

func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("set FIRESTORE_EMULATOR_HOST to run Firestore repository tests")
	}
	client, err := firestore.NewClient(context.Background(), "tuweb-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestUserRepository_UpdatePersistsProfileEdits(t *testing.T) {
	repo := NewUserRepository(newEmulatorClient(t))
	ctx := context.Background()

	uid := "u-" + uuid.New().String()
	u, err := repo.Ensure(ctx, uid, "ana@example.com")
	require.NoError(t, err)

	u.Name = "Ana"
	u.Phone = "+54 11 5555-0000"
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByUID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "+54 11 5555-0000", got.Phone)
	assert.Equal(t, "ana@example.com", got.Email)
}

func TestUserRepository_VerificationTokenFlow(t *testing.T) {
	repo := NewUserRepository(newEmulatorClient(t))
	ctx := context.Background()

	uid := "u-" + uuid.New().String()
	token := uuid.New().String()

	u, err := repo.Ensure(ctx, uid, "luis@example.com")
	require.NoError(t, err)
	u.VerificationToken = token
	require.NoError(t, repo.Update(ctx, u))

	found, err := repo.GetByVerificationToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, uid, found.UID)

	found.EmailVerified = true
	found.VerificationToken = ""
	require.NoError(t, repo.Update(ctx, found))

	got, err := repo.GetByUID(ctx, uid)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)

	// The spent token no longer resolves.
	_, err = repo.GetByVerificationToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_PreferencesRoundTrip(t *testing.T) {
	repo := NewUserRepository(newEmulatorClient(t))
	ctx := context.Background()
	uid := "u-" + uuid.New().String()

	defaults, err := repo.GetPreferences(ctx, uid)
	require.NoError(t, err)
	assert.True(t, defaults.Notifications)
	assert.Equal(t, "es", defaults.Language)

	want := &domain.Preferences{Notifications: false, Newsletter: true, Language: "en"}
	require.NoError(t, repo.SetPreferences(ctx, uid, want))

	got, err := repo.GetPreferences(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
