// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/ava-labs/hypersdk/requester"

	"github.com/hypersdk-labs/nftledgervm/consts"
	"github.com/hypersdk-labs/nftledgervm/genesis"
	"github.com/hypersdk-labs/nftledgervm/ledger"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester

	g *genesis.Genesis
}

// NewJSONRPCClient creates a new client object.
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, consts.Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.Genesis, error) {
	if cli.g != nil {
		return cli.g, nil
	}

	resp := new(GenesisReply)
	err := cli.requester.SendRequest(
		ctx,
		"genesis",
		nil,
		resp,
	)
	if err != nil {
		return nil, err
	}
	cli.g = resp.Genesis
	return resp.Genesis, nil
}

func (cli *JSONRPCClient) Token(ctx context.Context, tokenID uint64) (bool, string, string, error) {
	resp := new(TokenReply)
	err := cli.requester.SendRequest(
		ctx,
		"token",
		&TokenArgs{TokenID: tokenID},
		resp,
	)
	switch {
	// We use string parsing here because the JSON-RPC library we use may not
	// allows us to perform errors.Is.
	case err != nil && strings.Contains(err.Error(), ErrTokenNotFound.Error()):
		return false, "", "", nil
	case err != nil:
		return false, "", "", err
	}
	return true, resp.Owner, resp.Approved, nil
}

func (cli *JSONRPCClient) Balance(ctx context.Context, addr string) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"balance",
		&BalanceArgs{Address: addr},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) Operator(ctx context.Context, owner string, operator string) (bool, error) {
	resp := new(OperatorReply)
	err := cli.requester.SendRequest(
		ctx,
		"operator",
		&OperatorArgs{Owner: owner, Operator: operator},
		resp,
	)
	return resp.Approved, err
}

func (cli *JSONRPCClient) SupportsInterface(ctx context.Context, id ledger.InterfaceID) (bool, error) {
	resp := new(SupportsInterfaceReply)
	err := cli.requester.SendRequest(
		ctx,
		"supportsInterface",
		&SupportsInterfaceArgs{InterfaceID: hex.EncodeToString(id[:])},
		resp,
	)
	return resp.Supported, err
}
