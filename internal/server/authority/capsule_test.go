package authority

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCapsule(t *testing.T, fill byte) *Capsule {
	t.Helper()
	c, err := NewCapsule(bytes.Repeat([]byte{fill}, 32))
	require.NoError(t, err)
	return c
}

func TestNewCapsule_RejectsShortSeed(t *testing.T) {
	_, err := NewCapsule([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidSeed)

	_, err = NewCapsuleFromHex("zz")
	assert.Error(t, err)

	c, err := NewCapsuleFromHex(strings.Repeat("ab", 16))
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestDerive_Deterministic(t *testing.T) {
	c := testCapsule(t, 1)

	a1, err := c.Derive(DomainVault, "alice")
	require.NoError(t, err)
	a2, err := c.Derive(DomainVault, "alice")
	require.NoError(t, err)

	assert.Equal(t, a1.Address, a2.Address)
	assert.Equal(t, a1.Tag, a2.Tag)
	assert.True(t, strings.HasPrefix(a1.Address, "user_vault:"))
	assert.True(t, strings.HasPrefix(a1.Tag, "v1."))

	b, err := c.Derive(DomainVault, "bob")
	require.NoError(t, err)
	assert.NotEqual(t, a1.Address, b.Address)
}

func TestDerive_DependsOnSeed(t *testing.T) {
	a1, err := testCapsule(t, 1).Derive(DomainVault, "alice")
	require.NoError(t, err)
	a2, err := testCapsule(t, 2).Derive(DomainVault, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, a1.Address, a2.Address)
	assert.NotEqual(t, a1.Tag, a2.Tag)
}

func TestDerive_RejectsBadInput(t *testing.T) {
	c := testCapsule(t, 1)
	_, err := c.Derive("other", "alice")
	assert.Error(t, err)
	_, err = c.Derive(DomainVault, "")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	c := testCapsule(t, 1)
	a, err := c.Derive(DomainVault, "alice")
	require.NoError(t, err)

	got, err := c.Check(DomainVault, "alice", a.Tag)
	require.NoError(t, err)
	assert.Equal(t, a.Address, got.Address)

	_, err = c.Check(DomainVault, "alice", "v1.0000000000000000")
	assert.ErrorIs(t, err, common.ErrAuthorityMismatch)

	// a vault tag recorded under another seed no longer matches
	_, err = testCapsule(t, 9).Check(DomainVault, "alice", a.Tag)
	assert.ErrorIs(t, err, common.ErrAuthorityMismatch)
}

func TestVerify(t *testing.T) {
	c := testCapsule(t, 1)
	a, err := c.Derive(DomainVault, "alice")
	require.NoError(t, err)

	payload := []byte("transfer|x|alice|5")
	proof := a.Authorize(payload)
	require.NoError(t, c.Verify(proof, payload))

	t.Run("tampered payload", func(t *testing.T) {
		err := c.Verify(proof, []byte("transfer|x|alice|6"))
		assert.ErrorIs(t, err, common.ErrAuthorityMismatch)
	})

	t.Run("foreign address", func(t *testing.T) {
		p := proof
		p.Identity = "bob"
		assert.ErrorIs(t, c.Verify(p, payload), common.ErrAuthorityMismatch)
	})

	t.Run("garbage signature", func(t *testing.T) {
		p := proof
		p.Signature = "not-hex"
		assert.ErrorIs(t, c.Verify(p, payload), common.ErrAuthorityMismatch)
	})

	t.Run("unknown domain", func(t *testing.T) {
		p := proof
		p.Domain = "nope"
		assert.True(t, errors.Is(c.Verify(p, payload), common.ErrAuthorityMismatch))
	})
}

func TestDomainsAreNotInterchangeable(t *testing.T) {
	c := testCapsule(t, 1)

	mint, err := c.MintAuthority()
	require.NoError(t, err)
	vault, err := c.Derive(DomainVault, MintIdentity)
	require.NoError(t, err)

	assert.NotEqual(t, mint.Address, vault.Address)
	assert.NotEqual(t, mint.Tag, vault.Tag)

	payload := []byte("mint|pool|5")
	forged := vault.Authorize(payload)
	forged.Domain = DomainMint
	assert.ErrorIs(t, c.Verify(forged, payload), common.ErrAuthorityMismatch)
}
