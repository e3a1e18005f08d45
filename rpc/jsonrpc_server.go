// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/hex"
	"net/http"

	"github.com/ava-labs/hypersdk/codec"

	"github.com/hypersdk-labs/nftledgervm/genesis"
	"github.com/hypersdk-labs/nftledgervm/ledger"
)

type JSONRPCServer struct {
	c Controller
}

func NewJSONRPCServer(c Controller) *JSONRPCServer {
	return &JSONRPCServer{c}
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = j.c.Genesis()
	return nil
}

type TokenArgs struct {
	TokenID uint64 `json:"tokenID"`
}

type TokenReply struct {
	Owner    string `json:"owner"`
	Approved string `json:"approved"`
}

func (j *JSONRPCServer) Token(req *http.Request, args *TokenArgs, reply *TokenReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Token")
	defer span.End()

	exists, owner, approved, err := j.c.GetTokenFromState(ctx, args.TokenID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTokenNotFound
	}
	reply.Owner = owner.String()
	reply.Approved = approved.String()
	return nil
}

type BalanceArgs struct {
	Address string `json:"address"`
}

type BalanceReply struct {
	Amount uint64 `json:"amount"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Balance")
	defer span.End()

	addr, err := codec.StringToAddress(args.Address)
	if err != nil {
		return err
	}
	balance, err := j.c.GetBalanceFromState(ctx, addr)
	if err != nil {
		return err
	}
	reply.Amount = balance
	return nil
}

type OperatorArgs struct {
	Owner    string `json:"owner"`
	Operator string `json:"operator"`
}

type OperatorReply struct {
	Approved bool `json:"approved"`
}

func (j *JSONRPCServer) Operator(req *http.Request, args *OperatorArgs, reply *OperatorReply) error {
	ctx, span := j.c.Tracer().Start(req.Context(), "Server.Operator")
	defer span.End()

	owner, err := codec.StringToAddress(args.Owner)
	if err != nil {
		return err
	}
	operator, err := codec.StringToAddress(args.Operator)
	if err != nil {
		return err
	}
	approved, err := j.c.IsOperatorFromState(ctx, owner, operator)
	if err != nil {
		return err
	}
	reply.Approved = approved
	return nil
}

type SupportsInterfaceArgs struct {
	InterfaceID string `json:"interfaceID"` // 4 hex-encoded bytes
}

type SupportsInterfaceReply struct {
	Supported bool `json:"supported"`
}

// SupportsInterface never errors: malformed or unknown identifiers report
// false.
func (j *JSONRPCServer) SupportsInterface(_ *http.Request, args *SupportsInterfaceArgs, reply *SupportsInterfaceReply) error {
	b, err := hex.DecodeString(args.InterfaceID)
	if err != nil || len(b) != len(ledger.InterfaceID{}) {
		reply.Supported = false
		return nil
	}
	var id ledger.InterfaceID
	copy(id[:], b)
	reply.Supported = j.c.SupportsInterface(id)
	return nil
}
