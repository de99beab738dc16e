// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/vault-safe/internal/auth"
	"github.com/MKhiriev/vault-safe/internal/config"
	"github.com/MKhiriev/vault-safe/internal/crypto"
	"github.com/MKhiriev/vault-safe/internal/logger"
	"github.com/MKhiriev/vault-safe/internal/mock"
	"github.com/MKhiriev/vault-safe/internal/store"
	"github.com/MKhiriev/vault-safe/internal/validators"
	"github.com/MKhiriev/vault-safe/models"
)

type vaultMocks struct {
	repo   *mock.MockNoteRepository
	keys   *mock.MockKeyProvider
	cipher *mock.MockCipher
	gate   *mock.MockAccessGate
}

// newTestVaultSvc builds the service over mocks. A mock without EXPECT fails
// the test on any call, so every test doubles as a spy.
func newTestVaultSvc(t *testing.T, cfg config.Vault) (VaultService, vaultMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := vaultMocks{
		repo:   mock.NewMockNoteRepository(ctrl),
		keys:   mock.NewMockKeyProvider(ctrl),
		cipher: mock.NewMockCipher(ctrl),
		gate:   mock.NewMockAccessGate(ctrl),
	}
	svc := NewVaultService(m.repo, m.keys, m.cipher, m.gate, validators.NewNoteValidator(), cfg, logger.Nop())
	return svc, m
}

func testKey(t *testing.T) *crypto.MasterKey {
	t.Helper()
	key, err := crypto.GenerateMasterKey()
	require.NoError(t, err)
	return key
}

func authorized() auth.Decision {
	return auth.Decision{Authorized: true, State: auth.StateAuthorized, Reason: auth.ReasonAuthorized, Timestamp: time.Now()}
}

func denied() auth.Decision {
	return auth.Decision{State: auth.StateDenied, Reason: auth.ReasonNotMatched, Timestamp: time.Now()}
}

func gateError() auth.Decision {
	return auth.Decision{State: auth.StateError, Reason: auth.ReasonUnavailable, Timestamp: time.Now()}
}

func boolPtr(b bool) *bool { return &b }

// ── SaveNote ─────────────────────────────────────────────────────────────────

func TestVaultService_SaveNote_Success(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})
	ctx := context.Background()
	key := testKey(t)
	env := crypto.Envelope("sealed")

	gomock.InOrder(
		m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).Return(key, nil),
		m.cipher.EXPECT().Encrypt([]byte("4521"), key).Return(env, nil),
		m.repo.EXPECT().Insert(gomock.Any(), models.SecretNote{Title: "Bank PIN", Envelope: []byte(env), Category: "Finance"}).
			Return(models.SecretNote{ID: 7, Title: "Bank PIN", Envelope: []byte(env), Category: "Finance"}, nil),
	)

	id, err := svc.SaveNote(ctx, "Bank PIN", "4521", "Finance")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestVaultService_SaveNote_DefaultCategory(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Vault
		category string
		want     string
	}{
		{name: "empty uses built-in default", category: "", want: models.DefaultCategory},
		{name: "blank uses built-in default", category: "   ", want: models.DefaultCategory},
		{name: "configured default", cfg: config.Vault{DefaultCategory: "Personal"}, category: "", want: "Personal"},
		{name: "explicit category kept", cfg: config.Vault{DefaultCategory: "Personal"}, category: " Work ", want: "Work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestVaultSvc(t, tt.cfg)
			key := testKey(t)

			m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).Return(key, nil)
			m.cipher.EXPECT().Encrypt(gomock.Any(), key).Return(crypto.Envelope("sealed"), nil)
			m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n models.SecretNote) (models.SecretNote, error) {
				assert.Equal(t, "Wifi", n.Title)
				assert.Equal(t, tt.want, n.Category)
				n.ID = 1
				return n, nil
			})

			_, err := svc.SaveNote(context.Background(), "Wifi", "hunter2", tt.category)
			require.NoError(t, err)
		})
	}
}

func TestVaultService_SaveNote_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		wantErr error
	}{
		{name: "empty title", title: "", content: "4521", wantErr: validators.ErrEmptyTitle},
		{name: "empty content", title: "Bank PIN", content: "", wantErr: validators.ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestVaultSvc(t, config.Vault{})

			_, err := svc.SaveNote(context.Background(), tt.title, tt.content, "")
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVaultService_SaveNote_KeyUnavailable(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).Return(nil, crypto.ErrKeyUnavailable)

	_, err := svc.SaveNote(context.Background(), "Bank PIN", "4521", "")
	assert.ErrorIs(t, err, crypto.ErrKeyUnavailable)
}

func TestVaultService_SaveNote_EncryptError(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})
	key := testKey(t)

	m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).Return(key, nil)
	m.cipher.EXPECT().Encrypt(gomock.Any(), key).Return(nil, crypto.ErrPlaintextTooLarge)

	_, err := svc.SaveNote(context.Background(), "Bank PIN", "4521", "")
	assert.ErrorIs(t, err, crypto.ErrPlaintextTooLarge)
	assert.Contains(t, err.Error(), "encrypt note")
}

func TestVaultService_SaveNote_StoreError(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})
	key := testKey(t)

	m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).Return(key, nil)
	m.cipher.EXPECT().Encrypt(gomock.Any(), key).Return(crypto.Envelope("sealed"), nil)
	m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(models.SecretNote{}, store.ErrStore)

	_, err := svc.SaveNote(context.Background(), "Bank PIN", "4521", "")
	assert.ErrorIs(t, err, store.ErrStore)
}

// Validation runs first: a rejected input reaches neither the gate, the keys,
// the cipher nor the store.
func TestVaultService_ValidatorRejectionStopsEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	rejected := errors.New("rejected")

	validator := mock.NewMockValidator(ctrl)
	svc := NewVaultService(
		mock.NewMockNoteRepository(ctrl),
		mock.NewMockKeyProvider(ctrl),
		mock.NewMockCipher(ctrl),
		mock.NewMockAccessGate(ctrl),
		validator, config.Vault{}, logger.Nop(),
	)
	ctx := context.Background()

	validator.EXPECT().Validate(gomock.Any(), models.NoteDraft{Title: "Bank PIN", Content: "4521", Category: "Finance"}).Return(rejected)
	_, err := svc.SaveNote(ctx, "Bank PIN", "4521", " Finance ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, rejected)

	validator.EXPECT().Validate(gomock.Any(), int64(3)).Return(rejected).Times(2)
	_, err = svc.RevealNote(ctx, 3)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, svc.DeleteNote(ctx, 3), ErrInvalidInput)
}

// ── ListNotes ────────────────────────────────────────────────────────────────

func TestVaultService_ListNotes_NeverDecrypts(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})
	want := []models.NoteSummary{
		{ID: 2, Title: "Wifi", Category: "General"},
		{ID: 1, Title: "Bank PIN", Category: "Finance"},
	}

	m.repo.EXPECT().ListMetadata(gomock.Any()).Return(want, nil)

	got, err := svc.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVaultService_ListNotes_Error(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.repo.EXPECT().ListMetadata(gomock.Any()).Return(nil, store.ErrStore)

	_, err := svc.ListNotes(context.Background())
	assert.ErrorIs(t, err, store.ErrStore)
}

// ── RevealNote ───────────────────────────────────────────────────────────────

func TestVaultService_RevealNote_Success(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})
	key := testKey(t)
	env := []byte("sealed")

	gomock.InOrder(
		m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReveal).Return(authorized()),
		m.repo.EXPECT().GetEnvelope(gomock.Any(), int64(1)).Return(env, nil),
		m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).Return(key, nil),
		m.cipher.EXPECT().Decrypt(crypto.Envelope(env), key).Return([]byte("4521"), nil),
	)

	content, err := svc.RevealNote(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "4521", content)
}

func TestVaultService_RevealNote_DeniedTouchesNothing(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	// repo, keys and cipher carry no expectations: any call fails the test
	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReveal).Return(denied())

	content, err := svc.RevealNote(context.Background(), 1)
	assert.Empty(t, content)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.NotErrorIs(t, err, ErrGateUnavailable)
}

func TestVaultService_RevealNote_GateErrorTouchesNothing(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReveal).Return(gateError())

	_, err := svc.RevealNote(context.Background(), 1)
	assert.ErrorIs(t, err, ErrGateUnavailable)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestVaultService_RevealNote_LockedOutTouchesNothing(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReveal).Return(auth.Decision{State: auth.StateDenied, Reason: auth.ReasonLockedOut})

	_, err := svc.RevealNote(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLockedOut)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.NotErrorIs(t, err, ErrGateUnavailable)
}

func TestVaultService_NotMatchedIsNotLockedOut(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReveal).Return(auth.Decision{State: auth.StateDenied, Reason: auth.ReasonNotMatched})

	_, err := svc.RevealNote(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.NotErrorIs(t, err, ErrLockedOut)
}

func TestVaultService_RevealNote_NotFound(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReveal).Return(authorized())
	m.repo.EXPECT().GetEnvelope(gomock.Any(), int64(404)).Return(nil, store.ErrNoteNotFound)

	_, err := svc.RevealNote(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestVaultService_RevealNote_IntegrityViolation(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})
	key := testKey(t)

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReveal).Return(authorized())
	m.repo.EXPECT().GetEnvelope(gomock.Any(), int64(1)).Return([]byte("tampered"), nil)
	m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).Return(key, nil)
	m.cipher.EXPECT().Decrypt(gomock.Any(), key).Return(nil, crypto.ErrIntegrityViolation)

	content, err := svc.RevealNote(context.Background(), 1)
	assert.Empty(t, content)
	assert.ErrorIs(t, err, crypto.ErrIntegrityViolation)
}

func TestVaultService_RevealNote_KeyUnavailable(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReveal).Return(authorized())
	m.repo.EXPECT().GetEnvelope(gomock.Any(), int64(1)).Return([]byte("sealed"), nil)
	m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).Return(nil, crypto.ErrKeyUnavailable)

	_, err := svc.RevealNote(context.Background(), 1)
	assert.ErrorIs(t, err, crypto.ErrKeyUnavailable)
}

func TestVaultService_RevealNote_InvalidIDSkipsGate(t *testing.T) {
	svc, _ := newTestVaultSvc(t, config.Vault{})

	_, err := svc.RevealNote(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// ── DeleteNote ───────────────────────────────────────────────────────────────

func TestVaultService_DeleteNote_RequiresAuthByDefault(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	gomock.InOrder(
		m.gate.EXPECT().CheckAccess(gomock.Any(), PromptDelete).Return(authorized()),
		m.repo.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil),
	)

	require.NoError(t, svc.DeleteNote(context.Background(), 3))
}

func TestVaultService_DeleteNote_DeniedKeepsNote(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{DeleteRequiresAuth: boolPtr(true)})

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptDelete).Return(denied())

	err := svc.DeleteNote(context.Background(), 3)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestVaultService_DeleteNote_WithoutAuthPolicy(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{DeleteRequiresAuth: boolPtr(false)})

	// gate carries no expectations
	m.repo.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)

	require.NoError(t, svc.DeleteNote(context.Background(), 3))
}

func TestVaultService_DeleteNote_NotFound(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{DeleteRequiresAuth: boolPtr(false)})

	m.repo.EXPECT().Delete(gomock.Any(), int64(9)).Return(store.ErrNoteNotFound)

	assert.ErrorIs(t, svc.DeleteNote(context.Background(), 9), store.ErrNoteNotFound)
}

// ── ResetVault ───────────────────────────────────────────────────────────────

func TestVaultService_ResetVault_Success(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	gomock.InOrder(
		m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReset).Return(authorized()),
		m.repo.EXPECT().Purge(gomock.Any()).Return(int64(4), nil),
		m.keys.EXPECT().ResetVault(gomock.Any()).Return(nil),
		m.gate.EXPECT().Lock(),
	)

	require.NoError(t, svc.ResetVault(context.Background()))
}

func TestVaultService_ResetVault_Denied(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReset).Return(denied())

	assert.ErrorIs(t, svc.ResetVault(context.Background()), ErrAccessDenied)
}

func TestVaultService_ResetVault_PurgeErrorKeepsKey(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReset).Return(authorized())
	m.repo.EXPECT().Purge(gomock.Any()).Return(int64(0), store.ErrStore)

	assert.ErrorIs(t, svc.ResetVault(context.Background()), store.ErrStore)
}

func TestVaultService_ResetVault_KeyError(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReset).Return(authorized())
	m.repo.EXPECT().Purge(gomock.Any()).Return(int64(0), nil)
	m.keys.EXPECT().ResetVault(gomock.Any()).Return(crypto.ErrKeyUnavailable)

	assert.ErrorIs(t, svc.ResetVault(context.Background()), crypto.ErrKeyUnavailable)
}

// ── ReencryptAll ─────────────────────────────────────────────────────────────

func TestVaultService_ReencryptAll_RewritesOutdatedOnly(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})
	key := testKey(t)
	oldEnv := []byte("v1-sealed")
	newEnv := []byte("v2-sealed")

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReencrypt).Return(authorized())
	m.repo.EXPECT().ListMetadata(gomock.Any()).Return([]models.NoteSummary{{ID: 2}, {ID: 1}}, nil)
	m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).Return(key, nil)

	m.repo.EXPECT().GetEnvelope(gomock.Any(), int64(2)).Return(newEnv, nil)
	m.cipher.EXPECT().NeedsUpgrade(crypto.Envelope(newEnv)).Return(false)

	m.repo.EXPECT().GetEnvelope(gomock.Any(), int64(1)).Return(oldEnv, nil)
	m.cipher.EXPECT().NeedsUpgrade(crypto.Envelope(oldEnv)).Return(true)
	m.cipher.EXPECT().Decrypt(crypto.Envelope(oldEnv), key).Return([]byte("4521"), nil)
	m.cipher.EXPECT().Encrypt([]byte("4521"), key).Return(crypto.Envelope("upgraded"), nil)
	m.repo.EXPECT().UpdateEnvelope(gomock.Any(), int64(1), []byte("upgraded")).Return(nil)

	n, err := svc.ReencryptAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestVaultService_ReencryptAll_Denied(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReencrypt).Return(denied())

	n, err := svc.ReencryptAll(context.Background())
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestVaultService_ReencryptAll_StopsOnIntegrityViolation(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})
	key := testKey(t)

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReencrypt).Return(authorized())
	m.repo.EXPECT().ListMetadata(gomock.Any()).Return([]models.NoteSummary{{ID: 1}, {ID: 2}}, nil)
	m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).Return(key, nil)
	m.repo.EXPECT().GetEnvelope(gomock.Any(), int64(1)).Return([]byte("bad"), nil)
	m.cipher.EXPECT().NeedsUpgrade(gomock.Any()).Return(true)
	m.cipher.EXPECT().Decrypt(gomock.Any(), key).Return(nil, crypto.ErrIntegrityViolation)

	n, err := svc.ReencryptAll(context.Background())
	assert.Zero(t, n)
	assert.ErrorIs(t, err, crypto.ErrIntegrityViolation)
}

func TestVaultService_ReencryptAll_Cancelled(t *testing.T) {
	svc, m := newTestVaultSvc(t, config.Vault{})
	key := testKey(t)
	ctx, cancel := context.WithCancel(context.Background())

	m.gate.EXPECT().CheckAccess(gomock.Any(), PromptReencrypt).Return(authorized())
	m.repo.EXPECT().ListMetadata(gomock.Any()).Return([]models.NoteSummary{{ID: 1}}, nil)
	m.keys.EXPECT().GetOrCreateMasterKey(gomock.Any()).DoAndReturn(func(context.Context) (*crypto.MasterKey, error) {
		cancel()
		return key, nil
	})

	_, err := svc.ReencryptAll(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
