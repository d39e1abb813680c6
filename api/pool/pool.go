// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/driplabs/drip/api/restutil"
	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/pool"
	"github.com/driplabs/drip/pool/reverts"
)

// Pool exposes the reward-distribution ledger over HTTP.
type Pool struct {
	pool *pool.Pool
}

func New(p *pool.Pool) *Pool {
	return &Pool{pool: p}
}

// StakeRequest is the body of stake and withdraw calls.
type StakeRequest struct {
	Caller drip.Address          `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// ClaimRequest is the body of claim calls.
type ClaimRequest struct {
	Caller drip.Address `json:"caller"`
}

// DurationRequest is the body of the admin duration call.
type DurationRequest struct {
	Caller   drip.Address `json:"caller"`
	Duration uint64       `json:"duration"`
}

// Amount is a single big integer payload.
type Amount struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// StatusResponse is the JSON shape of the pool's global state.
type StatusResponse struct {
	TotalStaked    *math.HexOrDecimal256 `json:"totalStaked"`
	RewardRate     *math.HexOrDecimal256 `json:"rewardRate"`
	RewardPerShare *math.HexOrDecimal256 `json:"rewardPerShare"`
	PeriodFinish   uint64                `json:"periodFinish"`
	LastUpdate     uint64                `json:"lastUpdate"`
	Duration       uint64                `json:"duration"`
}

// convertError maps ledger reverts onto HTTP statuses. An authorization
// failure is forbidden, any other revert is a bad request, everything else is
// an internal error.
func convertError(err error) error {
	if errors.Is(err, reverts.ErrNotAuthorized) {
		return restutil.Forbidden(err)
	}
	if reverts.IsRevertErr(err) {
		return restutil.BadRequest(err)
	}
	return err
}

func bigInt(a *math.HexOrDecimal256) *big.Int {
	if a == nil {
		return nil
	}
	return (*big.Int)(a)
}

func hexOrDecimal(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v)
}

func (p *Pool) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.pool.Stake(body.Caller, bigInt(body.Amount)); err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &struct{}{})
}

func (p *Pool) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.pool.Withdraw(body.Caller, bigInt(body.Amount)); err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &struct{}{})
}

func (p *Pool) handleClaim(w http.ResponseWriter, req *http.Request) error {
	var body ClaimRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	paid, err := p.pool.Claim(body.Caller)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &Amount{Amount: hexOrDecimal(paid)})
}

func (p *Pool) handleSetDuration(w http.ResponseWriter, req *http.Request) error {
	var body DurationRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.pool.SetRewardsDuration(body.Caller, body.Duration); err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &struct{}{})
}

func (p *Pool) handleNotify(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.pool.NotifyRewardAmount(body.Caller, bigInt(body.Amount)); err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &struct{}{})
}

func (p *Pool) handleGetEarned(w http.ResponseWriter, req *http.Request) error {
	addr, err := drip.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	earned, err := p.pool.Earned(*addr)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &Amount{Amount: hexOrDecimal(earned)})
}

func (p *Pool) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := drip.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	bal, err := p.pool.StakedBalanceOf(*addr)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &Amount{Amount: hexOrDecimal(bal)})
}

func (p *Pool) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	status, err := p.pool.Status()
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &StatusResponse{
		TotalStaked:    hexOrDecimal(status.TotalStaked),
		RewardRate:     hexOrDecimal(status.RewardRate),
		RewardPerShare: hexOrDecimal(status.RewardPerShare),
		PeriodFinish:   status.PeriodFinish,
		LastUpdate:     status.LastUpdate,
		Duration:       status.Duration,
	})
}

func (p *Pool) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("POST /pool/stake").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleStake))
	sub.Path("/withdraw").
		Methods(http.MethodPost).
		Name("POST /pool/withdraw").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleWithdraw))
	sub.Path("/claim").
		Methods(http.MethodPost).
		Name("POST /pool/claim").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleClaim))
	sub.Path("/duration").
		Methods(http.MethodPost).
		Name("POST /pool/duration").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleSetDuration))
	sub.Path("/notify").
		Methods(http.MethodPost).
		Name("POST /pool/notify").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleNotify))
	sub.Path("/earned/{address}").
		Methods(http.MethodGet).
		Name("GET /pool/earned").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetEarned))
	sub.Path("/balance/{address}").
		Methods(http.MethodGet).
		Name("GET /pool/balance").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetBalance))
	sub.Path("/status").
		Methods(http.MethodGet).
		Name("GET /pool/status").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetStatus))
}
