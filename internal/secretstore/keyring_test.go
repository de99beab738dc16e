package secretstore

import (
	"context"
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/logger"
)

// failingKeyring simulates a locked or unreachable platform keychain.
type failingKeyring struct {
	keyring.ArrayKeyring
	err error
}

func (f *failingKeyring) Get(string) (keyring.Item, error) { return keyring.Item{}, f.err }
func (f *failingKeyring) Set(keyring.Item) error          { return f.err }
func (f *failingKeyring) Remove(string) error              { return f.err }

func TestKeyringStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	ring := keyring.NewArrayKeyring(nil)
	s := NewKeyringStore(ring, "vault-safe:")

	_, err := s.Get(ctx, "master-key")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "master-key", []byte{1, 2, 3}))

	got, err := s.Get(ctx, "master-key")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	// stored under the prefixed key
	item, err := ring.Get("vault-safe:master-key")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, item.Data)

	require.NoError(t, s.Delete(ctx, "master-key"))
	_, err = s.Get(ctx, "master-key")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestKeyringStore_DeleteAbsentIsNoError(t *testing.T) {
	s := NewKeyringStore(keyring.NewArrayKeyring(nil), "p:")
	assert.NoError(t, s.Delete(context.Background(), "nothing"))
}

func TestKeyringStore_BackendErrorsAreNotNotFound(t *testing.T) {
	ctx := context.Background()
	locked := errors.New("keychain is locked")
	s := NewKeyringStore(&failingKeyring{err: locked}, "p:")

	_, err := s.Get(ctx, "master-key")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, locked)

	assert.ErrorIs(t, s.Set(ctx, "master-key", []byte{1}), locked)
	assert.ErrorIs(t, s.Delete(ctx, "master-key"), locked)
}

func TestKeyringStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewKeyringStore(keyring.NewArrayKeyring(nil), "p:")
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Set(ctx, "k", []byte{1}), context.Canceled)
	assert.ErrorIs(t, s.Delete(ctx, "k"), context.Canceled)
}

func TestOpenKeyring_FileBackend(t *testing.T) {
	cfg := config.Keys{
		Backend:         config.KeysBackendKeyring,
		KeyringBackends: []string{string(keyring.FileBackend)},
		ServiceName:     "vault-safe-test",
		FileDir:         t.TempDir(),
		FilePassword:    "file-backend-password",
	}

	s, err := OpenKeyring(cfg, logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "gate-verifier", []byte("verifier")))
	got, err := s.Get(ctx, "gate-verifier")
	require.NoError(t, err)
	assert.Equal(t, []byte("verifier"), got)
}

func TestOpenKeyring_UnknownBackend(t *testing.T) {
	cfg := config.Keys{
		Backend:         config.KeysBackendKeyring,
		KeyringBackends: []string{"no-such-backend"},
		ServiceName:     "vault-safe-test",
	}

	_, err := OpenKeyring(cfg, logger.Nop())
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestAllowedBackends(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Keys
		want []keyring.BackendType
	}{
		{
			name: "file dropped without password",
			cfg:  config.Keys{KeyringBackends: []string{"secret-service", "file"}},
			want: []keyring.BackendType{keyring.SecretServiceBackend},
		},
		{
			name: "file kept with password",
			cfg:  config.Keys{KeyringBackends: []string{"file"}, FilePassword: "pw"},
			want: []keyring.BackendType{keyring.FileBackend},
		},
		{
			name: "only file without password leaves nothing",
			cfg:  config.Keys{KeyringBackends: []string{"file"}},
			want: []keyring.BackendType{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, allowedBackends(tt.cfg))
		})
	}
}

func TestAllowedBackends_DefaultListExcludesFile(t *testing.T) {
	assert.NotContains(t, allowedBackends(config.Keys{}), keyring.FileBackend)
}

func TestFilePasswordFunc_NeverPrompts(t *testing.T) {
	_, err := filePasswordFunc("")("Enter passphrase")
	assert.ErrorIs(t, err, ErrBackendUnavailable)

	pw, err := filePasswordFunc("pw")("Enter passphrase")
	require.NoError(t, err)
	assert.Equal(t, "pw", pw)
}

func TestOpenKeyring_FileWithoutPassword(t *testing.T) {
	cfg := config.Keys{
		Backend:         config.KeysBackendKeyring,
		KeyringBackends: []string{string(keyring.FileBackend)},
		ServiceName:     "vault-safe-test",
		FileDir:         t.TempDir(),
	}

	_, err := OpenKeyring(cfg, logger.Nop())
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
