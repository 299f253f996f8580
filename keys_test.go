package espnow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/espnow/peer"
)

func TestDerivePrimaryKeyDeterministic(t *testing.T) {
	k1, err := DerivePrimaryKey([]byte("shared network secret"))
	require.NoError(t, err)
	k2, err := DerivePrimaryKey([]byte("shared network secret"))
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	k3, err := DerivePrimaryKey([]byte("different secret"))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	assert.NotEqual(t, peer.Key{}, k1, "derived key must not be all zeros")
}

func TestDeriveLocalKeyVariesPerPeer(t *testing.T) {
	secret := []byte("shared network secret")
	a1 := peer.Addr{0x02, 0, 0, 0, 0, 1}
	a2 := peer.Addr{0x02, 0, 0, 0, 0, 2}

	k1, err := DeriveLocalKey(secret, a1)
	require.NoError(t, err)
	k2, err := DeriveLocalKey(secret, a2)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	// Local keys are domain-separated from the primary key.
	pk, err := DerivePrimaryKey(secret)
	require.NoError(t, err)
	assert.NotEqual(t, pk, k1)
}

func TestDeriveKeyEmptySecret(t *testing.T) {
	_, err := DerivePrimaryKey(nil)
	assert.Error(t, err)
}
