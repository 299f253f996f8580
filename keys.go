package espnow

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/opd-ai/espnow/limits"
	"github.com/opd-ai/espnow/peer"
)

// Key derivation helpers for deployments that provision radio keys from a
// shared secret instead of shipping raw 16-byte blobs. The derived material
// is opaque to the rest of the bridge, exactly like directly supplied keys.

// DerivePrimaryKey derives the network-wide primary key from a shared secret
// using HKDF-SHA256.
func DerivePrimaryKey(secret []byte) (peer.Key, error) {
	return deriveKey(secret, []byte("espnow primary key v1"))
}

// DeriveLocalKey derives a per-peer local key from a shared secret and the
// peer's address using HKDF-SHA256. Distinct peers yield distinct keys from
// the same secret.
func DeriveLocalKey(secret []byte, addr peer.Addr) (peer.Key, error) {
	info := append([]byte("espnow local key v1:"), addr[:]...)
	return deriveKey(secret, info)
}

func deriveKey(secret, info []byte) (peer.Key, error) {
	var k peer.Key
	if len(secret) == 0 {
		return k, fmt.Errorf("deriving key: empty secret")
	}
	r := hkdf.New(sha256.New, secret, nil, info)
	if _, err := io.ReadFull(r, k[:limits.KeyLen]); err != nil {
		return k, fmt.Errorf("deriving key: %w", err)
	}
	return k, nil
}
