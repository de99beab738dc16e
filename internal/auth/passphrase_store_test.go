package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/vault-safe/internal/auth"
	"github.com/MKhiriev/vault-safe/internal/crypto"
	"github.com/MKhiriev/vault-safe/internal/mock"
	"github.com/MKhiriev/vault-safe/internal/secretstore"
)

func cheapParams() crypto.Argon2Params {
	return crypto.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32}
}

// A failed re-enrollment must leave the previous passphrase usable.
func TestPassphraseChecker_FailedReEnrollKeepsOldPassphrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	backing := secretstore.NewMemoryStore()
	require.NoError(t, auth.NewPassphraseChecker(backing, nil, cheapParams()).Enroll(ctx, "first passphrase"))

	writeErr := errors.New("keychain write refused")
	store := mock.NewMockSecretStore(ctrl)
	store.EXPECT().Set(gomock.Any(), auth.VerifierItem, gomock.Any()).Return(writeErr).Times(1)
	store.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(backing.Get).AnyTimes()

	err := auth.NewPassphraseChecker(store, nil, cheapParams()).Enroll(ctx, "second passphrase")
	require.ErrorIs(t, err, writeErr)

	prompter := mock.NewMockCredentialPrompter(ctrl)
	gomock.InOrder(
		prompter.EXPECT().PromptCredential(gomock.Any(), "reveal").Return("first passphrase", nil),
		prompter.EXPECT().PromptCredential(gomock.Any(), "reveal").Return("second passphrase", nil),
	)
	c := auth.NewPassphraseChecker(store, prompter, cheapParams())

	res, err := c.Authenticate(ctx, "reveal")
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = c.Authenticate(ctx, "reveal")
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestPassphraseChecker_EnrollWritesSingleItem(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mock.NewMockSecretStore(ctrl)
	store.EXPECT().Set(gomock.Any(), auth.VerifierItem, gomock.Any()).Return(nil).Times(1)

	assert.NoError(t, auth.NewPassphraseChecker(store, nil, cheapParams()).Enroll(context.Background(), "correct horse"))
}

func TestPassphraseChecker_PromptsThroughPrompter(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	store := secretstore.NewMemoryStore()
	require.NoError(t, auth.NewPassphraseChecker(store, nil, cheapParams()).Enroll(ctx, "correct horse"))

	prompter := mock.NewMockCredentialPrompter(ctrl)
	prompter.EXPECT().PromptCredential(gomock.Any(), "delete note").Return("", auth.ErrPromptDismissed)

	_, err := auth.NewPassphraseChecker(store, prompter, cheapParams()).Authenticate(ctx, "delete note")
	assert.ErrorIs(t, err, auth.ErrPromptDismissed)
}
