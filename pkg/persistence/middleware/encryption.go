package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.TableStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals snapshot states with AES-GCM.
// Domain, hasher and creation time stay readable so tables can still be listed and matched.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, errors.New("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.TableStore) ports.TableStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, name string, snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is nil: %w", domain.ErrSnapshotMismatch)
	}
	plainText, err := json.Marshal(snap.States)
	if err != nil {
		return fmt.Errorf("failed to marshal states: %w", err)
	}

	sealed, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt states: %w", err)
	}

	envelope := &domain.Snapshot{
		Domain:     snap.Domain,
		Hasher:     snap.Hasher,
		CreatedAt:  snap.CreatedAt,
		Unexpanded: snap.Unexpanded,
		Sealed:     sealed,
	}
	return m.next.Save(ctx, name, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, name string) (*domain.Snapshot, error) {
	envelope, err := m.next.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	// Fail secure: a store configured for encryption never returns plain tables.
	if len(envelope.Sealed) == 0 {
		return nil, errors.New("table is missing its sealed states")
	}

	plainText, err := decryptWithRotation(envelope.Sealed, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt table: %w", err)
	}

	var states []*domain.State
	if err := json.Unmarshal(plainText, &states); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted states: %w", err)
	}

	return &domain.Snapshot{
		Domain:     envelope.Domain,
		Hasher:     envelope.Hasher,
		CreatedAt:  envelope.CreatedAt,
		Unexpanded: envelope.Unexpanded,
		States:     states,
	}, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func encrypt(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	for _, key := range append([][]byte{activeKey}, fallbackKeys...) {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, body := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
