// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements the authoritative non-fungible token ownership
// state machine: owners, per-token approvals, operator approvals, and derived
// balances.
//
// A Ledger is a serializing handle over an in-memory store. Every operation
// is atomic: mutations are staged on a scoped [tstate.TStateView] and
// committed only if the whole operation (including the receiver acceptance
// check on safe transfers) succeeds.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/state/tstate"

	"github.com/hypersdk-labs/nftledgervm/genesis"
	"github.com/hypersdk-labs/nftledgervm/storage"
)

// changedKeysEstimate sizes the tstate overlay; it only affects allocation.
const changedKeysEstimate = 16

type Ledger struct {
	l sync.Mutex

	ts   *tstate.TState
	base map[string][]byte

	gen      *genesis.Genesis
	tracer   trace.Tracer
	resolver ReceiverResolver
}

type Option func(*Ledger)

// WithReceiverResolver installs the acceptance-check resolver consulted on
// safe transfers. Without one, every account is a plain account.
func WithReceiverResolver(r ReceiverResolver) Option {
	return func(l *Ledger) {
		l.resolver = r
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(l *Ledger) {
		l.tracer = t
	}
}

// New returns a ledger with [gen]'s initial allocations minted. A nil [gen]
// is treated as the default (empty) genesis.
func New(ctx context.Context, gen *genesis.Genesis, opts ...Option) (*Ledger, error) {
	if gen == nil {
		gen = genesis.Default()
	}
	l := &Ledger{
		ts:     tstate.New(changedKeysEstimate),
		base:   make(map[string][]byte),
		gen:    gen,
		tracer: trace.Noop,
		resolver: func(codec.Address) (TokenReceiver, bool) {
			return nil, false
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := gen.Load(ctx, l.tracer, &baseState{l.base}); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) Genesis() *genesis.Genesis {
	return l.gen
}

func (l *Ledger) Tracer() trace.Tracer {
	return l.tracer
}

// SupportsInterface implements the static introspection query. It never
// consults ledger state.
func (*Ledger) SupportsInterface(id InterfaceID) bool {
	return SupportsInterface(id)
}

// Mint creates [tokenID] owned by [to].
func (l *Ledger) Mint(ctx context.Context, to codec.Address, tokenID uint64) error {
	l.l.Lock()
	defer l.l.Unlock()

	tsv := l.ts.NewView(state.Keys{
		string(storage.TokenKey(tokenID)): state.All,
		string(storage.BalanceKey(to)):    state.All,
	}, l.base)
	if err := storage.MintToken(ctx, tsv, to, tokenID); err != nil {
		return err
	}
	tsv.Commit()
	return nil
}

// Burn destroys [tokenID]. [actor] must be the owner, the approved account,
// or an operator for the owner.
func (l *Ledger) Burn(ctx context.Context, actor codec.Address, tokenID uint64) error {
	l.l.Lock()
	defer l.l.Unlock()

	// Resolve the owner first so its balance and operator pair can be in
	// scope.
	owner, _, err := l.getToken(ctx, tokenID)
	if err != nil {
		return err
	}
	tsv := l.ts.NewView(state.Keys{
		string(storage.TokenKey(tokenID)):         state.All,
		string(storage.BalanceKey(owner)):         state.Read | state.Write,
		string(storage.OperatorKey(owner, actor)): state.Read,
	}, l.base)
	if err := storage.BurnToken(ctx, tsv, actor, tokenID); err != nil {
		return err
	}
	tsv.Commit()
	return nil
}

// OwnerOf returns the current owner of [tokenID].
func (l *Ledger) OwnerOf(ctx context.Context, tokenID uint64) (codec.Address, error) {
	l.l.Lock()
	defer l.l.Unlock()

	owner, _, err := l.getToken(ctx, tokenID)
	return owner, err
}

// BalanceOf returns the number of tokens owned by [account].
func (l *Ledger) BalanceOf(ctx context.Context, account codec.Address) (uint64, error) {
	if account == codec.EmptyAddress {
		return 0, storage.ErrInvalidTarget
	}

	l.l.Lock()
	defer l.l.Unlock()

	tsv := l.ts.NewView(state.Keys{
		string(storage.BalanceKey(account)): state.Read,
	}, l.base)
	return storage.GetBalance(ctx, tsv, account)
}

// Approve sets [to] as the approved account for [tokenID]. [actor] must be
// the token's owner or an operator for the owner. [to] may be the empty
// address to clear the approval.
func (l *Ledger) Approve(ctx context.Context, actor codec.Address, to codec.Address, tokenID uint64) error {
	l.l.Lock()
	defer l.l.Unlock()

	owner, _, err := l.getToken(ctx, tokenID)
	if err != nil {
		return err
	}
	tsv := l.ts.NewView(state.Keys{
		string(storage.TokenKey(tokenID)):         state.All,
		string(storage.OperatorKey(owner, actor)): state.Read,
	}, l.base)
	if err := storage.ApproveToken(ctx, tsv, actor, to, tokenID); err != nil {
		return err
	}
	tsv.Commit()
	return nil
}

// GetApproved returns the approved account for [tokenID], which is the empty
// address when no approval is set.
func (l *Ledger) GetApproved(ctx context.Context, tokenID uint64) (codec.Address, error) {
	l.l.Lock()
	defer l.l.Unlock()

	_, approved, err := l.getToken(ctx, tokenID)
	return approved, err
}

// SetApprovalForAll grants or revokes [operator]'s blanket transfer rights
// over all of [owner]'s tokens. It is idempotent.
func (l *Ledger) SetApprovalForAll(ctx context.Context, owner codec.Address, operator codec.Address, approved bool) error {
	l.l.Lock()
	defer l.l.Unlock()

	tsv := l.ts.NewView(state.Keys{
		string(storage.OperatorKey(owner, operator)): state.All,
	}, l.base)
	if err := storage.SetOperator(ctx, tsv, owner, operator, approved); err != nil {
		return err
	}
	tsv.Commit()
	return nil
}

// IsApprovedForAll reports whether [operator] holds blanket transfer rights
// over [owner]'s tokens. Unknown pairs default to false.
func (l *Ledger) IsApprovedForAll(ctx context.Context, owner codec.Address, operator codec.Address) (bool, error) {
	l.l.Lock()
	defer l.l.Unlock()

	tsv := l.ts.NewView(state.Keys{
		string(storage.OperatorKey(owner, operator)): state.Read,
	}, l.base)
	return storage.IsOperator(ctx, tsv, owner, operator)
}

// TransferFrom moves [tokenID] from [from] to [to] and clears the token's
// approval. [actor] must be the owner, the approved account, or an operator
// for [from].
func (l *Ledger) TransferFrom(ctx context.Context, actor codec.Address, from codec.Address, to codec.Address, tokenID uint64) error {
	l.l.Lock()
	defer l.l.Unlock()

	tsv := l.transferView(actor, from, to, tokenID)
	if err := storage.TransferToken(ctx, tsv, actor, from, to, tokenID); err != nil {
		return err
	}
	tsv.Commit()
	return nil
}

// SafeTransferFrom performs the same transition as TransferFrom, then
// consults [to]'s acceptance check with ([actor], [from], [tokenID], [data]).
// If the check rejects, nothing is committed and ErrTransferRejected is
// returned; accounts without a check always accept.
func (l *Ledger) SafeTransferFrom(ctx context.Context, actor codec.Address, from codec.Address, to codec.Address, tokenID uint64, data []byte) error {
	l.l.Lock()
	defer l.l.Unlock()

	tsv := l.transferView(actor, from, to, tokenID)
	if err := storage.TransferToken(ctx, tsv, actor, from, to, tokenID); err != nil {
		return err
	}
	if receiver, ok := l.resolver(to); ok {
		if err := receiver.AcceptToken(ctx, actor, from, tokenID, data); err != nil {
			// The staged transfer is discarded with the view.
			return fmt.Errorf("%w: %s", ErrTransferRejected, err)
		}
	}
	tsv.Commit()
	return nil
}

// ReadState is a batch read over the authoritative state. It serves the
// storage [storage.ReadState] query variants.
func (l *Ledger) ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error) {
	l.l.Lock()
	defer l.l.Unlock()

	scope := make(state.Keys, len(keys))
	for _, k := range keys {
		scope.Add(string(k), state.Read)
	}
	tsv := l.ts.NewView(scope, l.base)
	values := make([][]byte, len(keys))
	errs := make([]error, len(keys))
	for i, k := range keys {
		values[i], errs[i] = tsv.GetValue(ctx, k)
	}
	return values, errs
}

// GetTokenFromState serves RPC token queries.
func (l *Ledger) GetTokenFromState(ctx context.Context, tokenID uint64) (bool, codec.Address, codec.Address, error) {
	return storage.GetTokenFromState(ctx, l.ReadState, tokenID)
}

// GetBalanceFromState serves RPC balance queries.
func (l *Ledger) GetBalanceFromState(ctx context.Context, addr codec.Address) (uint64, error) {
	return storage.GetBalanceFromState(ctx, l.ReadState, addr)
}

// IsOperatorFromState serves RPC operator queries.
func (l *Ledger) IsOperatorFromState(ctx context.Context, owner codec.Address, operator codec.Address) (bool, error) {
	return storage.IsOperatorFromState(ctx, l.ReadState, owner, operator)
}

// getToken reads [tokenID] under a read-only view. The caller must hold l.l.
func (l *Ledger) getToken(ctx context.Context, tokenID uint64) (codec.Address, codec.Address, error) {
	tsv := l.ts.NewView(state.Keys{
		string(storage.TokenKey(tokenID)): state.Read,
	}, l.base)
	exists, owner, approved, err := storage.GetToken(ctx, tsv, tokenID)
	if err != nil {
		return codec.EmptyAddress, codec.EmptyAddress, err
	}
	if !exists {
		return codec.EmptyAddress, codec.EmptyAddress, storage.ErrTokenMissing
	}
	return owner, approved, nil
}

// transferView scopes every key a transfer of [tokenID] may touch. The
// caller must hold l.l.
func (l *Ledger) transferView(actor codec.Address, from codec.Address, to codec.Address, tokenID uint64) *tstate.TStateView {
	return l.ts.NewView(state.Keys{
		string(storage.TokenKey(tokenID)):        state.All,
		string(storage.BalanceKey(from)):         state.Read | state.Write,
		string(storage.BalanceKey(to)):           state.All,
		string(storage.OperatorKey(from, actor)): state.Read,
	}, l.base)
}

var _ state.Mutable = (*baseState)(nil)

// baseState exposes the ledger's base map as a state.Mutable for genesis
// loading, before any tstate overlay exists.
type baseState struct {
	storage map[string][]byte
}

func (s *baseState) GetValue(_ context.Context, key []byte) ([]byte, error) {
	v, ok := s.storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (s *baseState) Insert(_ context.Context, key []byte, value []byte) error {
	s.storage[string(key)] = value
	return nil
}

func (s *baseState) Remove(_ context.Context, key []byte) error {
	delete(s.storage, string(key))
	return nil
}
