// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Contains read/write logic for the token ownership ledger.
package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/consts"
	"github.com/ava-labs/hypersdk/state"
)

type ReadState func(context.Context, [][]byte) ([][]byte, []error)

// State
// 0x0/ (tokens)
//   -> [tokenID] => owner|approved
// 0x1/ (balances)
//   -> [address] => uint64
// 0x2/ (operators)
//   -> [owner|operator] => 0x1
const (
	tokenPrefix    = 0x0
	balancePrefix  = 0x1
	operatorPrefix = 0x2
)

const (
	// A token record is owner|approved (66 bytes), which spans two 64-byte
	// chunks.
	TokenChunks    uint16 = 2
	BalanceChunks  uint16 = 1
	OperatorChunks uint16 = 1
)

var operatorSetByte = []byte{0x1}

// [tokenPrefix] + [tokenID]
func TokenKey(tokenID uint64) (k []byte) {
	k = make([]byte, 1+consts.Uint64Len+consts.Uint16Len)
	k[0] = tokenPrefix
	binary.BigEndian.PutUint64(k[1:], tokenID)
	binary.BigEndian.PutUint16(k[1+consts.Uint64Len:], TokenChunks)
	return
}

// [balancePrefix] + [address]
func BalanceKey(addr codec.Address) (k []byte) {
	k = make([]byte, 1+codec.AddressLen+consts.Uint16Len)
	k[0] = balancePrefix
	copy(k[1:], addr[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], BalanceChunks)
	return
}

// [operatorPrefix] + [owner] + [operator]
func OperatorKey(owner codec.Address, operator codec.Address) (k []byte) {
	k = make([]byte, 1+codec.AddressLen*2+consts.Uint16Len)
	k[0] = operatorPrefix
	copy(k[1:], owner[:])
	copy(k[1+codec.AddressLen:], operator[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen*2:], OperatorChunks)
	return
}

func GetToken(
	ctx context.Context,
	mu state.Mutable,
	tokenID uint64,
) (exists bool, owner codec.Address, approved codec.Address, err error) {
	k := TokenKey(tokenID)
	v, err := mu.GetValue(ctx, k)
	return innerGetToken(v, err)
}

// Used to serve RPC queries
func GetTokenFromState(
	ctx context.Context,
	f ReadState,
	tokenID uint64,
) (bool, codec.Address, codec.Address, error) {
	k := TokenKey(tokenID)
	values, errs := f(ctx, [][]byte{k})
	return innerGetToken(values[0], errs[0])
}

func innerGetToken(
	v []byte,
	err error,
) (bool, codec.Address, codec.Address, error) {
	if errors.Is(err, database.ErrNotFound) {
		return false, codec.EmptyAddress, codec.EmptyAddress, nil
	}
	if err != nil {
		return false, codec.EmptyAddress, codec.EmptyAddress, err
	}
	var owner codec.Address
	copy(owner[:], v[:codec.AddressLen])
	var approved codec.Address
	copy(approved[:], v[codec.AddressLen:])
	return true, owner, approved, nil
}

func SetToken(
	ctx context.Context,
	mu state.Mutable,
	tokenID uint64,
	owner codec.Address,
	approved codec.Address,
) error {
	k := TokenKey(tokenID)
	v := make([]byte, codec.AddressLen*2)
	copy(v, owner[:])
	copy(v[codec.AddressLen:], approved[:])
	return mu.Insert(ctx, k, v)
}

func GetBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
) (uint64, error) {
	bal, _, err := innerGetBalance(mu.GetValue(ctx, BalanceKey(addr)))
	return bal, err
}

// Used to serve RPC queries
func GetBalanceFromState(
	ctx context.Context,
	f ReadState,
	addr codec.Address,
) (uint64, error) {
	values, errs := f(ctx, [][]byte{BalanceKey(addr)})
	bal, _, err := innerGetBalance(values[0], errs[0])
	return bal, err
}

func innerGetBalance(
	v []byte,
	err error,
) (uint64, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return binary.BigEndian.Uint64(v), true, nil
}

func setBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	balance uint64,
) error {
	return mu.Insert(ctx, BalanceKey(addr), binary.BigEndian.AppendUint64(nil, balance))
}

func addBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) error {
	bal, err := GetBalance(ctx, mu, addr)
	if err != nil {
		return err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not add balance (bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	return setBalance(ctx, mu, addr, nbal)
}

func subBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	amount uint64,
) error {
	bal, err := GetBalance(ctx, mu, addr)
	if err != nil {
		return err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return fmt.Errorf(
			"%w: could not subtract balance (bal=%d, addr=%v, amount=%d)",
			ErrInvalidBalance,
			bal,
			addr,
			amount,
		)
	}
	if nbal == 0 {
		// If the account owns no tokens, we should delete the record instead
		// of setting it to 0.
		return mu.Remove(ctx, BalanceKey(addr))
	}
	return setBalance(ctx, mu, addr, nbal)
}

func IsOperator(
	ctx context.Context,
	mu state.Mutable,
	owner codec.Address,
	operator codec.Address,
) (bool, error) {
	_, err := mu.GetValue(ctx, OperatorKey(owner, operator))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Used to serve RPC queries
func IsOperatorFromState(
	ctx context.Context,
	f ReadState,
	owner codec.Address,
	operator codec.Address,
) (bool, error) {
	_, errs := f(ctx, [][]byte{OperatorKey(owner, operator)})
	if errors.Is(errs[0], database.ErrNotFound) {
		return false, nil
	}
	if errs[0] != nil {
		return false, errs[0]
	}
	return true, nil
}

// SetOperator grants or revokes blanket transfer rights over all of
// [owner]'s tokens. Granting is idempotent; revoked pairs are deleted
// rather than stored as false.
func SetOperator(
	ctx context.Context,
	mu state.Mutable,
	owner codec.Address,
	operator codec.Address,
	approved bool,
) error {
	if owner == operator {
		return ErrInvalidTarget
	}
	if approved {
		return mu.Insert(ctx, OperatorKey(owner, operator), operatorSetByte)
	}
	return mu.Remove(ctx, OperatorKey(owner, operator))
}

// isAuthorized returns whether [actor] may move a token: it must be the
// token's owner, its approved account, or an operator for the owner.
func isAuthorized(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	owner codec.Address,
	approved codec.Address,
) (bool, error) {
	if actor == owner || actor == approved {
		return true, nil
	}
	return IsOperator(ctx, mu, owner, actor)
}

// MintToken creates [tokenID] and assigns it to [to]. A freshly minted
// token has no approved account.
func MintToken(
	ctx context.Context,
	mu state.Mutable,
	to codec.Address,
	tokenID uint64,
) error {
	if to == codec.EmptyAddress {
		return ErrInvalidTarget
	}
	exists, _, _, err := GetToken(ctx, mu, tokenID)
	if err != nil {
		return err
	}
	if exists {
		return ErrTokenExists
	}
	if err := SetToken(ctx, mu, tokenID, to, codec.EmptyAddress); err != nil {
		return err
	}
	return addBalance(ctx, mu, to, 1)
}

// BurnToken destroys [tokenID], removing its ownership and approval
// entries. [actor] must hold transfer rights over the token.
func BurnToken(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	tokenID uint64,
) error {
	exists, owner, approved, err := GetToken(ctx, mu, tokenID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTokenMissing
	}
	authorized, err := isAuthorized(ctx, mu, actor, owner, approved)
	if err != nil {
		return err
	}
	if !authorized {
		return ErrNotAuthorized
	}
	if err := mu.Remove(ctx, TokenKey(tokenID)); err != nil {
		return err
	}
	return subBalance(ctx, mu, owner, 1)
}

// TransferToken moves [tokenID] from [from] to [to] and clears the
// token's approved account. [actor] must be the owner, the approved
// account, or an operator for [from].
func TransferToken(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	from codec.Address,
	to codec.Address,
	tokenID uint64,
) error {
	exists, owner, approved, err := GetToken(ctx, mu, tokenID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTokenMissing
	}
	if owner != from {
		return ErrWrongOwner
	}
	if to == codec.EmptyAddress {
		return ErrInvalidTarget
	}
	authorized, err := isAuthorized(ctx, mu, actor, owner, approved)
	if err != nil {
		return err
	}
	if !authorized {
		return ErrNotAuthorized
	}
	if err := SetToken(ctx, mu, tokenID, to, codec.EmptyAddress); err != nil {
		return err
	}
	if err := subBalance(ctx, mu, from, 1); err != nil {
		return err
	}
	return addBalance(ctx, mu, to, 1)
}

// ApproveToken sets [to] as the approved account for [tokenID]. [actor]
// must be the token's owner or an operator for the owner. [to] may be the
// empty address to clear the approval, or the owner itself (a no-op
// self-approval is permitted).
func ApproveToken(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	to codec.Address,
	tokenID uint64,
) error {
	exists, owner, _, err := GetToken(ctx, mu, tokenID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTokenMissing
	}
	if actor != owner {
		operator, err := IsOperator(ctx, mu, owner, actor)
		if err != nil {
			return err
		}
		if !operator {
			return ErrNotAuthorized
		}
	}
	return SetToken(ctx, mu, tokenID, owner, to)
}
