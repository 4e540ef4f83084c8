// Package authority derives key-less signing authorities from a service seed.
//
// An authority is a pure function of (seed, domain, identity). Nothing secret
// is ever persisted: the vault row stores only a derivation tag, and every
// signature is checked by deriving the authority again. Two domains exist,
// one per vault and one global mint authority, and the domain is bound into
// the derivation so authorities never cross domains.
package authority

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"golang.org/x/crypto/hkdf"
)

// Domain separates independent authority namespaces.
type Domain string

const (
	// DomainVault authorities sign transfers out of one vault's pool sub-account.
	DomainVault Domain = "user_vault"
	// DomainMint is the single global authority allowed to mint rewards.
	DomainMint Domain = "mint_auth"
)

// MintIdentity is the fixed identity of the global mint authority.
const MintIdentity = "global"

const (
	tagVersion   = "v1"
	keySize      = 32
	minSeedBytes = 16
	addressBytes = 20
)

var ErrInvalidSeed = errors.New("authority seed must be at least 16 bytes")

// Capsule derives authorities from a fixed seed.
type Capsule struct {
	seed []byte
}

// NewCapsule copies seed; it must carry at least 16 bytes of entropy.
func NewCapsule(seed []byte) (*Capsule, error) {
	if len(seed) < minSeedBytes {
		return nil, ErrInvalidSeed
	}
	return &Capsule{seed: append([]byte(nil), seed...)}, nil
}

// NewCapsuleFromHex decodes a hex seed, as stored in config.
func NewCapsuleFromHex(seed string) (*Capsule, error) {
	b, err := hex.DecodeString(seed)
	if err != nil {
		return nil, fmt.Errorf("decode authority seed: %w", err)
	}
	return NewCapsule(b)
}

// Authority is a derived signing capability. The key lives only in memory.
type Authority struct {
	Domain   Domain
	Identity string
	Address  string
	Tag      string

	key []byte
}

// Proof is what an authority hands to the token ledger. It carries no key
// material.
type Proof struct {
	Domain    Domain
	Identity  string
	Address   string
	Signature string
}

// Derive computes the authority for identity within domain.
func (c *Capsule) Derive(domain Domain, identity string) (*Authority, error) {
	if domain != DomainVault && domain != DomainMint {
		return nil, fmt.Errorf("unknown authority domain %q", domain)
	}
	if identity == "" {
		return nil, fmt.Errorf("authority identity is required")
	}

	key := make([]byte, keySize)
	r := hkdf.New(sha256.New, c.seed, nil, info(domain, identity))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive authority: %w", err)
	}

	return &Authority{
		Domain:   domain,
		Identity: identity,
		Address:  address(domain, key),
		Tag:      tag(key),
		key:      key,
	}, nil
}

// MintAuthority derives the global mint authority.
func (c *Capsule) MintAuthority() (*Authority, error) {
	return c.Derive(DomainMint, MintIdentity)
}

// Check derives the authority and compares it with a recorded derivation tag.
func (c *Capsule) Check(domain Domain, identity, recordedTag string) (*Authority, error) {
	a, err := c.Derive(domain, identity)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(a.Tag), []byte(recordedTag)) != 1 {
		return nil, fmt.Errorf("%w: %s authority for %q", common.ErrAuthorityMismatch, domain, identity)
	}
	return a, nil
}

// Verify recomputes the authority named by p and checks both its address and
// its signature over payload.
func (c *Capsule) Verify(p Proof, payload []byte) error {
	a, err := c.Derive(p.Domain, p.Identity)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrAuthorityMismatch, err)
	}
	if subtle.ConstantTimeCompare([]byte(a.Address), []byte(p.Address)) != 1 {
		return fmt.Errorf("%w: address does not match %s authority", common.ErrAuthorityMismatch, p.Domain)
	}
	want := a.sign(payload)
	got, err := hex.DecodeString(p.Signature)
	if err != nil || !hmac.Equal(want, got) {
		return fmt.Errorf("%w: bad signature", common.ErrAuthorityMismatch)
	}
	return nil
}

// Authorize signs payload and returns a proof for it.
func (a *Authority) Authorize(payload []byte) Proof {
	return Proof{
		Domain:    a.Domain,
		Identity:  a.Identity,
		Address:   a.Address,
		Signature: hex.EncodeToString(a.sign(payload)),
	}
}

func (a *Authority) sign(payload []byte) []byte {
	m := hmac.New(sha256.New, a.key)
	m.Write(payload)
	return m.Sum(nil)
}

func info(domain Domain, identity string) []byte {
	b := make([]byte, 0, len(domain)+1+len(identity))
	b = append(b, string(domain)...)
	b = append(b, 0)
	b = append(b, identity...)
	return b
}

func address(domain Domain, key []byte) string {
	sum := sha256.Sum256(key)
	return string(domain) + ":" + hex.EncodeToString(sum[:addressBytes])
}

func tag(key []byte) string {
	m := hmac.New(sha256.New, key)
	m.Write([]byte("derivation-tag"))
	return tagVersion + "." + hex.EncodeToString(m.Sum(nil)[:8])
}
