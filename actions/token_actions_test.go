// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/state/tstate"

	"github.com/hypersdk-labs/nftledgervm/chaintest"
	"github.com/hypersdk-labs/nftledgervm/storage"
)

func TestMintToken(t *testing.T) {
	require := require.New(t)
	ts := tstate.New(1)

	onesAddr := createAddressWithSameDigits(1)

	mintTokenTests := []chaintest.ActionTest{
		{
			Name: "Not allowing mints to the empty address",
			Action: &MintToken{
				To:      codec.EmptyAddress,
				TokenID: 1,
			},
			ExpectedErr: storage.ErrInvalidTarget,
			State: ts.NewView(
				tokenStateKeys(codec.EmptyAddress, codec.EmptyAddress, codec.EmptyAddress, 1),
				chaintest.NewInMemoryStore().Storage,
			),
		},
		{
			Name: "Correct token is minted",
			Action: &MintToken{
				To:      onesAddr,
				TokenID: 1,
			},
			ExpectedOutput: &MintTokenResult{Balance: 1},
			State: ts.NewView(
				tokenStateKeys(onesAddr, onesAddr, onesAddr, 1),
				chaintest.NewInMemoryStore().Storage,
			),
			Assertion: func(m state.Mutable) bool {
				exists, owner, approved, err := storage.GetToken(context.TODO(), m, 1)
				require.NoError(err)
				balance, err := storage.GetBalance(context.TODO(), m, onesAddr)
				require.NoError(err)
				return exists && owner == onesAddr && approved == codec.EmptyAddress && balance == 1
			},
			Actor: onesAddr,
		},
		{
			Name: "Does not allow overwriting of an existing token",
			Action: &MintToken{
				To:      onesAddr,
				TokenID: 1,
			},
			SetupActions: []chain.Action{
				&MintToken{
					To:      onesAddr,
					TokenID: 1,
				},
			},
			ExpectedErr: storage.ErrTokenExists,
			State: ts.NewView(
				tokenStateKeys(onesAddr, onesAddr, onesAddr, 1),
				chaintest.NewInMemoryStore().Storage,
			),
			Actor: onesAddr,
		},
	}

	chaintest.Run(t, mintTokenTests)
}

func TestTransferToken(t *testing.T) {
	require := require.New(t)
	ts := tstate.New(1)

	onesAddr := createAddressWithSameDigits(1)
	twosAddr := createAddressWithSameDigits(2)
	threesAddr := createAddressWithSameDigits(3)

	// Every transfer moves token 1 away from onesAddr.
	ownedStore := func(setup ...func(state.Mutable) error) map[string][]byte {
		store := chaintest.NewInMemoryStore()
		require.NoError(storage.MintToken(context.TODO(), store, onesAddr, 1))
		for _, f := range setup {
			require.NoError(f(store))
		}
		return store.Storage
	}

	transferTokenTests := []chaintest.ActionTest{
		{
			Name: "Transfer of a missing token fails",
			Action: &TransferToken{
				From:    onesAddr,
				To:      twosAddr,
				TokenID: 1,
			},
			ExpectedErr: storage.ErrTokenMissing,
			State: ts.NewView(
				tokenStateKeys(onesAddr, onesAddr, twosAddr, 1),
				chaintest.NewInMemoryStore().Storage,
			),
			Actor: onesAddr,
		},
		{
			Name: "Stated owner must match the actual owner",
			Action: &TransferToken{
				From:    twosAddr,
				To:      threesAddr,
				TokenID: 1,
			},
			ExpectedErr: storage.ErrWrongOwner,
			State: ts.NewView(
				tokenStateKeys(twosAddr, twosAddr, threesAddr, 1),
				ownedStore(),
			),
			Actor: twosAddr,
		},
		{
			Name: "Transfer to the empty address fails",
			Action: &TransferToken{
				From:    onesAddr,
				To:      codec.EmptyAddress,
				TokenID: 1,
			},
			ExpectedErr: storage.ErrInvalidTarget,
			State: ts.NewView(
				tokenStateKeys(onesAddr, onesAddr, codec.EmptyAddress, 1),
				ownedStore(),
			),
			Actor: onesAddr,
		},
		{
			Name: "Actor without rights cannot transfer",
			Action: &TransferToken{
				From:    onesAddr,
				To:      threesAddr,
				TokenID: 1,
			},
			ExpectedErr: storage.ErrNotAuthorized,
			State: ts.NewView(
				tokenStateKeys(threesAddr, onesAddr, threesAddr, 1),
				ownedStore(),
			),
			Actor: threesAddr,
		},
		{
			Name: "Owner transfer moves the token and clears its approval",
			Action: &TransferToken{
				From:    onesAddr,
				To:      threesAddr,
				TokenID: 1,
			},
			ExpectedOutput: &TransferTokenResult{FromBalance: 0, ToBalance: 1},
			State: ts.NewView(
				tokenStateKeys(onesAddr, onesAddr, threesAddr, 1),
				ownedStore(func(m state.Mutable) error {
					return storage.ApproveToken(context.TODO(), m, onesAddr, twosAddr, 1)
				}),
			),
			Assertion: func(m state.Mutable) bool {
				exists, owner, approved, err := storage.GetToken(context.TODO(), m, 1)
				require.NoError(err)
				fromBalance, err := storage.GetBalance(context.TODO(), m, onesAddr)
				require.NoError(err)
				toBalance, err := storage.GetBalance(context.TODO(), m, threesAddr)
				require.NoError(err)
				return exists && owner == threesAddr && approved == codec.EmptyAddress &&
					fromBalance == 0 && toBalance == 1
			},
			Actor: onesAddr,
		},
		{
			Name: "Approved account can transfer",
			Action: &TransferToken{
				From:    onesAddr,
				To:      threesAddr,
				TokenID: 1,
			},
			ExpectedOutput: &TransferTokenResult{FromBalance: 0, ToBalance: 1},
			State: ts.NewView(
				tokenStateKeys(twosAddr, onesAddr, threesAddr, 1),
				ownedStore(func(m state.Mutable) error {
					return storage.ApproveToken(context.TODO(), m, onesAddr, twosAddr, 1)
				}),
			),
			Assertion: func(m state.Mutable) bool {
				_, owner, _, err := storage.GetToken(context.TODO(), m, 1)
				require.NoError(err)
				return owner == threesAddr
			},
			Actor: twosAddr,
		},
		{
			Name: "Operator can transfer",
			Action: &TransferToken{
				From:    onesAddr,
				To:      threesAddr,
				TokenID: 1,
			},
			ExpectedOutput: &TransferTokenResult{FromBalance: 0, ToBalance: 1},
			State: ts.NewView(
				tokenStateKeys(twosAddr, onesAddr, threesAddr, 1),
				ownedStore(func(m state.Mutable) error {
					return storage.SetOperator(context.TODO(), m, onesAddr, twosAddr, true)
				}),
			),
			Assertion: func(m state.Mutable) bool {
				_, owner, _, err := storage.GetToken(context.TODO(), m, 1)
				require.NoError(err)
				return owner == threesAddr
			},
			Actor: twosAddr,
		},
	}

	chaintest.Run(t, transferTokenTests)
}

func TestApproveToken(t *testing.T) {
	require := require.New(t)
	ts := tstate.New(1)

	onesAddr := createAddressWithSameDigits(1)
	twosAddr := createAddressWithSameDigits(2)
	threesAddr := createAddressWithSameDigits(3)

	approveKeys := func(owner codec.Address, actor codec.Address, tokenID uint64) state.Keys {
		stateKeys := make(state.Keys)
		stateKeys.Add(string(storage.TokenKey(tokenID)), state.All)
		stateKeys.Add(string(storage.BalanceKey(owner)), state.All)
		stateKeys.Add(string(storage.OperatorKey(owner, actor)), state.Read)
		return stateKeys
	}

	ownedStore := func(setup ...func(state.Mutable) error) map[string][]byte {
		store := chaintest.NewInMemoryStore()
		require.NoError(storage.MintToken(context.TODO(), store, onesAddr, 1))
		for _, f := range setup {
			require.NoError(f(store))
		}
		return store.Storage
	}

	approveTokenTests := []chaintest.ActionTest{
		{
			Name: "Approve on a missing token fails",
			Action: &ApproveToken{
				To:      twosAddr,
				Owner:   onesAddr,
				TokenID: 1,
			},
			ExpectedErr: storage.ErrTokenMissing,
			State:       ts.NewView(approveKeys(onesAddr, onesAddr, 1), chaintest.NewInMemoryStore().Storage),
			Actor:       onesAddr,
		},
		{
			Name: "Only the owner or an operator can approve",
			Action: &ApproveToken{
				To:      threesAddr,
				Owner:   onesAddr,
				TokenID: 1,
			},
			ExpectedErr: storage.ErrNotAuthorized,
			State:       ts.NewView(approveKeys(onesAddr, twosAddr, 1), ownedStore()),
			Actor:       twosAddr,
		},
		{
			Name: "Owner can approve",
			Action: &ApproveToken{
				To:      twosAddr,
				Owner:   onesAddr,
				TokenID: 1,
			},
			ExpectedOutput: &ApproveTokenResult{Approved: twosAddr},
			State:          ts.NewView(approveKeys(onesAddr, onesAddr, 1), ownedStore()),
			Assertion: func(m state.Mutable) bool {
				_, _, approved, err := storage.GetToken(context.TODO(), m, 1)
				require.NoError(err)
				return approved == twosAddr
			},
			Actor: onesAddr,
		},
		{
			Name: "Operator can approve",
			Action: &ApproveToken{
				To:      threesAddr,
				Owner:   onesAddr,
				TokenID: 1,
			},
			ExpectedOutput: &ApproveTokenResult{Approved: threesAddr},
			State: ts.NewView(approveKeys(onesAddr, twosAddr, 1), ownedStore(func(m state.Mutable) error {
				return storage.SetOperator(context.TODO(), m, onesAddr, twosAddr, true)
			})),
			Assertion: func(m state.Mutable) bool {
				_, _, approved, err := storage.GetToken(context.TODO(), m, 1)
				require.NoError(err)
				return approved == threesAddr
			},
			Actor: twosAddr,
		},
		{
			Name: "Self-approval to the owner is permitted",
			Action: &ApproveToken{
				To:      onesAddr,
				Owner:   onesAddr,
				TokenID: 1,
			},
			ExpectedOutput: &ApproveTokenResult{Approved: onesAddr},
			State:          ts.NewView(approveKeys(onesAddr, onesAddr, 1), ownedStore()),
			Assertion: func(m state.Mutable) bool {
				_, _, approved, err := storage.GetToken(context.TODO(), m, 1)
				require.NoError(err)
				return approved == onesAddr
			},
			Actor: onesAddr,
		},
		{
			Name: "Approving the empty address clears an approval",
			Action: &ApproveToken{
				To:      codec.EmptyAddress,
				Owner:   onesAddr,
				TokenID: 1,
			},
			ExpectedOutput: &ApproveTokenResult{Approved: codec.EmptyAddress},
			State: ts.NewView(approveKeys(onesAddr, onesAddr, 1), ownedStore(func(m state.Mutable) error {
				return storage.ApproveToken(context.TODO(), m, onesAddr, twosAddr, 1)
			})),
			Assertion: func(m state.Mutable) bool {
				_, _, approved, err := storage.GetToken(context.TODO(), m, 1)
				require.NoError(err)
				return approved == codec.EmptyAddress
			},
			Actor: onesAddr,
		},
	}

	chaintest.Run(t, approveTokenTests)
}

func TestSetApprovalForAll(t *testing.T) {
	require := require.New(t)
	ts := tstate.New(1)

	onesAddr := createAddressWithSameDigits(1)
	twosAddr := createAddressWithSameDigits(2)

	operatorKeys := func(owner codec.Address, operator codec.Address) state.Keys {
		stateKeys := make(state.Keys)
		stateKeys.Add(string(storage.OperatorKey(owner, operator)), state.All)
		return stateKeys
	}

	setApprovalForAllTests := []chaintest.ActionTest{
		{
			Name: "Owner cannot be its own operator",
			Action: &SetApprovalForAll{
				Operator: onesAddr,
				Approved: true,
			},
			ExpectedErr: storage.ErrInvalidTarget,
			State:       ts.NewView(operatorKeys(onesAddr, onesAddr), chaintest.NewInMemoryStore().Storage),
			Actor:       onesAddr,
		},
		{
			Name: "Grant is recorded",
			Action: &SetApprovalForAll{
				Operator: twosAddr,
				Approved: true,
			},
			ExpectedOutput: &SetApprovalForAllResult{Approved: true},
			State:          ts.NewView(operatorKeys(onesAddr, twosAddr), chaintest.NewInMemoryStore().Storage),
			Assertion: func(m state.Mutable) bool {
				approved, err := storage.IsOperator(context.TODO(), m, onesAddr, twosAddr)
				require.NoError(err)
				return approved
			},
			Actor: onesAddr,
		},
		{
			Name: "Revoke returns the pair to false",
			Action: &SetApprovalForAll{
				Operator: twosAddr,
				Approved: false,
			},
			ExpectedOutput: &SetApprovalForAllResult{Approved: false},
			SetupActions: []chain.Action{
				&SetApprovalForAll{
					Operator: twosAddr,
					Approved: true,
				},
			},
			State: ts.NewView(operatorKeys(onesAddr, twosAddr), chaintest.NewInMemoryStore().Storage),
			Assertion: func(m state.Mutable) bool {
				approved, err := storage.IsOperator(context.TODO(), m, onesAddr, twosAddr)
				require.NoError(err)
				return !approved
			},
			Actor: onesAddr,
		},
	}

	chaintest.Run(t, setApprovalForAllTests)
}

func TestBurnToken(t *testing.T) {
	require := require.New(t)
	ts := tstate.New(1)

	onesAddr := createAddressWithSameDigits(1)
	twosAddr := createAddressWithSameDigits(2)

	ownedStore := func(setup ...func(state.Mutable) error) map[string][]byte {
		store := chaintest.NewInMemoryStore()
		require.NoError(storage.MintToken(context.TODO(), store, onesAddr, 1))
		for _, f := range setup {
			require.NoError(f(store))
		}
		return store.Storage
	}

	burnTokenTests := []chaintest.ActionTest{
		{
			Name: "Burn of a missing token fails",
			Action: &BurnToken{
				From:    onesAddr,
				TokenID: 1,
			},
			ExpectedErr: storage.ErrTokenMissing,
			State: ts.NewView(
				tokenStateKeys(onesAddr, onesAddr, onesAddr, 1),
				chaintest.NewInMemoryStore().Storage,
			),
			Actor: onesAddr,
		},
		{
			Name: "Stated owner must match the actual owner",
			Action: &BurnToken{
				From:    twosAddr,
				TokenID: 1,
			},
			ExpectedErr: storage.ErrWrongOwner,
			State: ts.NewView(
				tokenStateKeys(twosAddr, twosAddr, twosAddr, 1),
				ownedStore(),
			),
			Actor: twosAddr,
		},
		{
			Name: "Actor without rights cannot burn",
			Action: &BurnToken{
				From:    onesAddr,
				TokenID: 1,
			},
			ExpectedErr: storage.ErrNotAuthorized,
			State: ts.NewView(
				tokenStateKeys(twosAddr, onesAddr, twosAddr, 1),
				ownedStore(),
			),
			Actor: twosAddr,
		},
		{
			Name: "Owner burn removes the token",
			Action: &BurnToken{
				From:    onesAddr,
				TokenID: 1,
			},
			ExpectedOutput: &BurnTokenResult{Balance: 0},
			State: ts.NewView(
				tokenStateKeys(onesAddr, onesAddr, onesAddr, 1),
				ownedStore(),
			),
			Assertion: func(m state.Mutable) bool {
				exists, _, _, err := storage.GetToken(context.TODO(), m, 1)
				require.NoError(err)
				balance, err := storage.GetBalance(context.TODO(), m, onesAddr)
				require.NoError(err)
				return !exists && balance == 0
			},
			Actor: onesAddr,
		},
	}

	chaintest.Run(t, burnTokenTests)
}
