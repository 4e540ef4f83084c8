// Package tokenledger implements the token ledger the vault core mints into
// and transfers out of. Every call must carry a proof from a derived
// authority; the ledger checks it by recomputation and journals an entry.
package tokenledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/server/authority"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/ledger"
	"github.com/segmentio/ksuid"
)

// Verifier checks an authority proof over a payload.
type Verifier interface {
	Verify(p authority.Proof, payload []byte) error
}

// newEntryID is a seam for deterministic ids in tests.
var newEntryID = func() string {
	return ksuid.New().String()
}

type Ledger struct {
	repo     ledger.Repository
	verifier Verifier
}

// New binds a ledger to a repository. Pass a repository built on the
// caller's transaction to make mints and transfers part of it.
func New(repo ledger.Repository, verifier Verifier) *Ledger {
	return &Ledger{repo: repo, verifier: verifier}
}

// MintPayload is the canonical message a mint authority signs.
func MintPayload(account string, amount uint64) []byte {
	return payload(models.EntryKindMint, account, "", amount)
}

// TransferPayload is the canonical message a vault authority signs.
func TransferPayload(source, destination string, amount uint64) []byte {
	return payload(models.EntryKindTransfer, source, destination, amount)
}

func payload(kind, a, b string, amount uint64) []byte {
	buf := make([]byte, 0, len(kind)+len(a)+len(b)+24)
	buf = append(buf, kind...)
	buf = append(buf, 0)
	buf = append(buf, a...)
	buf = append(buf, 0)
	buf = append(buf, b...)
	buf = append(buf, 0)
	buf = strconv.AppendUint(buf, amount, 10)
	return buf
}

// Mint issues amount new tokens into account. Only the global mint authority
// may sign a mint.
func (l *Ledger) Mint(ctx context.Context, account string, amount uint64, proof authority.Proof) (*models.LedgerEntry, error) {
	if amount == 0 {
		return nil, fmt.Errorf("%w: zero amount", common.ErrMintFailed)
	}
	if proof.Domain != authority.DomainMint {
		return nil, fmt.Errorf("%w: %w: %s authority cannot mint", common.ErrMintFailed, common.ErrAuthorityMismatch, proof.Domain)
	}
	if err := l.verifier.Verify(proof, MintPayload(account, amount)); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrMintFailed, err)
	}

	if _, err := l.repo.Credit(ctx, account, amount); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrMintFailed, err)
	}

	e := &models.LedgerEntry{
		ID:          newEntryID(),
		Kind:        models.EntryKindMint,
		Source:      proof.Address,
		Destination: account,
		Amount:      amount,
		Authority:   proof.Address,
	}
	if err := l.repo.Append(ctx, e); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrMintFailed, err)
	}

	return e, nil
}

// Transfer moves amount from source to destination. The proof must come from
// the vault authority whose address is source.
func (l *Ledger) Transfer(ctx context.Context, source, destination string, amount uint64, proof authority.Proof) (*models.LedgerEntry, error) {
	if amount == 0 {
		return nil, fmt.Errorf("%w: zero amount", common.ErrTransferFailed)
	}
	if proof.Domain != authority.DomainVault || proof.Address != source {
		return nil, fmt.Errorf("%w: %w: proof does not cover %s", common.ErrTransferFailed, common.ErrAuthorityMismatch, source)
	}
	if err := l.verifier.Verify(proof, TransferPayload(source, destination, amount)); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrTransferFailed, err)
	}

	if _, err := l.repo.Debit(ctx, source, amount); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrTransferFailed, err)
	}
	if _, err := l.repo.Credit(ctx, destination, amount); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrTransferFailed, err)
	}

	e := &models.LedgerEntry{
		ID:          newEntryID(),
		Kind:        models.EntryKindTransfer,
		Source:      source,
		Destination: destination,
		Amount:      amount,
		Authority:   proof.Address,
	}
	if err := l.repo.Append(ctx, e); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrTransferFailed, err)
	}

	return e, nil
}

func (l *Ledger) Balance(ctx context.Context, address string) (uint64, error) {
	return l.repo.Balance(ctx, address)
}

// History returns the most recent entries touching address.
func (l *Ledger) History(ctx context.Context, address string, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	return l.repo.Entries(ctx, address, limit)
}
