// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a rejection of a pool operation. A revert aborts the whole
// operation; no partial state mutation survives it.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// IsRevertErr reports whether err is (or wraps) an ErrRevert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Rejection kinds of the pool's public operations. Each is a distinct value,
// so callers can match with errors.Is.
var (
	ErrInvalidAmount       = New("invalid amount")
	ErrInsufficientBalance = New("insufficient staked balance")
	ErrNotAuthorized       = New("caller is not the administrator")
	ErrPeriodActive        = New("reward period still active")
	ErrZeroRate            = New("computed reward rate is zero")
	ErrInsufficientReserve = New("committed reward exceeds reserve balance")
)
