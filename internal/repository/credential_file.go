package repository

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	sealedPrefix = "sealed:v1:"
	nonceSize    = 24

	sealSalt = "hospital-console/credential-store"
	sealInfo = "secretbox key v1"
)

// ErrSealedCredential is returned when a stored credential cannot be opened
// with the configured key.
var ErrSealedCredential = errors.New("sealed credential cannot be opened")

type fileCredentialRepository struct {
	path string
	key  *[32]byte
}

// SealKey derives a secretbox key from a configured secret with HKDF-SHA256.
// An empty secret disables sealing.
func SealKey(secret string) *[32]byte {
	if secret == "" {
		return nil
	}
	var key [32]byte
	kdf := hkdf.New(sha256.New, []byte(secret), []byte(sealSalt), []byte(sealInfo))
	if _, err := io.ReadFull(kdf, key[:]); err != nil {
		// HKDF-SHA256 yields up to 8160 bytes; 32 cannot fail.
		panic(fmt.Sprintf("derive seal key: %v", err))
	}
	return &key
}

// NewFileCredentialRepository stores the slot as dir/slot. With a non-nil key
// the credential is sealed with NaCl secretbox before it touches disk.
func NewFileCredentialRepository(dir, slot string, key *[32]byte) CredentialRepository {
	return &fileCredentialRepository{path: filepath.Join(dir, slot), key: key}
}

func (r *fileCredentialRepository) Save(_ context.Context, credential string) error {
	payload := []byte(credential)
	if r.key != nil {
		sealed, err := r.seal(payload)
		if err != nil {
			return err
		}
		payload = sealed
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create credential file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credential file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod credential file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace credential file: %w", err)
	}
	return nil
}

func (r *fileCredentialRepository) Load(_ context.Context) (string, bool, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read credential file: %w", err)
	}

	content := strings.TrimSpace(string(raw))
	sealed := strings.HasPrefix(content, sealedPrefix)
	switch {
	case sealed && r.key == nil, !sealed && r.key != nil:
		return "", false, ErrSealedCredential
	case sealed:
		opened, err := r.open(strings.TrimPrefix(content, sealedPrefix))
		if err != nil {
			return "", false, err
		}
		return opened, true, nil
	}
	return content, true, nil
}

func (r *fileCredentialRepository) Clear(_ context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}

func (r *fileCredentialRepository) seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], plain, &nonce, r.key)
	return []byte(sealedPrefix + base64.RawURLEncoding.EncodeToString(box)), nil
}

func (r *fileCredentialRepository) open(encoded string) (string, error) {
	box, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", ErrSealedCredential
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, r.key)
	if !ok {
		return "", ErrSealedCredential
	}
	return string(plain), nil
}
