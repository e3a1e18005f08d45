// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidTarget  = errors.New("invalid target account")
	ErrTokenExists    = errors.New("token already exists")
	ErrTokenMissing   = errors.New("token does not exist")
	ErrWrongOwner     = errors.New("wrong owner")
	ErrNotAuthorized  = errors.New("actor is not authorized")
	ErrInvalidBalance = errors.New("invalid balance")
)
