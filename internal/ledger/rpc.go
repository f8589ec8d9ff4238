package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stackify/marketplace-engine/internal/entity"
	"go.uber.org/zap"
)

const jsonrpcVersion = "2.0"

// Host-side error codes returned by the ledger node.
const (
	rpcErrInsufficientFunds = 1001
	rpcErrNotTokenOwner     = 1002
	rpcErrUnknownAsset      = 1003
)

// A rpcClient represents a JSON RPC client (over HTTP(s)).
type rpcClient struct {
	url        string
	httpClient *retryablehttp.Client
	timeout    int
	debug      bool
}

type rpcRequest struct {
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	Id      int64       `json:"id"`
	JsonRpc string      `json:"jsonrpc"`
}

type RPCErrorCode int

type RPCError struct {
	Code    RPCErrorCode `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
}

var _, _ error = RPCError{}, (*RPCError)(nil)

func (e RPCError) Error() string {
	return fmt.Sprintf("%d:%s", e.Code, e.Message)
}

type rpcResponse struct {
	Id     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

func newRpcClient(url string, timeout int, debug bool) (*rpcClient, error) {
	if len(url) == 0 {
		return nil, errors.New("bad call missing argument host")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = 3

	return &rpcClient{
		url,
		retryClient,
		timeout,
		debug,
	}, nil
}

// doTimeoutRequest process a HTTP request with timeout
func (c *rpcClient) doTimeoutRequest(timer *time.Timer, req *retryablehttp.Request) (*http.Response, error) {
	type result struct {
		resp *http.Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := c.httpClient.Do(req)
		done <- result{resp, err}
	}()

	select {
	case r := <-done:
		return r.resp, r.err
	case <-timer.C:
		return nil, errors.New("timeout reading data from server")
	}
}

func (c *rpcClient) call(method string, params interface{}) (rr *rpcResponse, err error) {
	rpcR := rpcRequest{method, params, time.Now().UnixNano(), jsonrpcVersion}
	payloadBuffer := &bytes.Buffer{}
	jsonEncoder := json.NewEncoder(payloadBuffer)
	err = jsonEncoder.Encode(rpcR)
	if err != nil {
		return
	}

	zap.L().With(zap.String("request", rpcR.Method)).Debug("Ledger: RPC Request")
	if c.debug {
		zap.L().With(zap.String("request", payloadBuffer.String())).Debug("Ledger: RPC Request")
	}

	req, err := retryablehttp.NewRequest("POST", c.url, payloadBuffer)
	if err != nil {
		return
	}

	req.Header.Add("Content-Type", "application/json;charset=utf-8")
	req.Header.Add("Accept", "application/json")

	resp, err := c.doTimeoutRequest(time.NewTimer(time.Duration(c.timeout)*time.Second), req)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Ledger: RPC Failure")
		return
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return
	}

	if c.debug {
		zap.L().With(zap.String("response", string(data))).Debug("Ledger: RPC Response")
	}

	err = json.Unmarshal(data, &rr)
	return
}

// RpcLedger speaks to a remote ledger node. Atomically queues every operation
// locally and submits them as a single apply call, so the node commits or
// rejects the whole batch in one host transaction.
type RpcLedger struct {
	client *rpcClient
}

func NewRpcLedger(url string, timeout int, debug bool) (*RpcLedger, error) {
	client, err := newRpcClient(url, timeout, debug)
	if err != nil {
		return nil, err
	}

	return &RpcLedger{client}, nil
}

func (l *RpcLedger) OwnerOf(collection entity.Principal, assetId uint64) (entity.Principal, error) {
	resp, err := l.client.call("ledger_ownerOf", map[string]interface{}{
		"collection": collection,
		"assetId":    assetId,
	})
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", mapRpcError(resp.Error)
	}

	var owner entity.Principal
	if err := json.Unmarshal(resp.Result, &owner); err != nil {
		return "", err
	}

	return owner, nil
}

func (l *RpcLedger) Atomically(fn func(tx Tx) error) error {
	work := &rpcTx{}
	if err := fn(work); err != nil {
		return err
	}

	resp, err := l.client.call("ledger_apply", map[string]interface{}{"ops": work.ops})
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return mapRpcError(resp.Error)
	}

	return nil
}

type ledgerOp struct {
	Op         string           `json:"op"`
	From       entity.Principal `json:"from"`
	To         entity.Principal `json:"to"`
	Amount     uint64           `json:"amount,omitempty"`
	Collection entity.Principal `json:"collection,omitempty"`
	AssetId    uint64           `json:"assetId,omitempty"`
}

type rpcTx struct {
	ops []ledgerOp
}

func (t *rpcTx) Pay(from, to entity.Principal, amount uint64) error {
	t.ops = append(t.ops, ledgerOp{Op: "pay", From: from, To: to, Amount: amount})
	return nil
}

func (t *rpcTx) Transfer(collection entity.Principal, assetId uint64, from, to entity.Principal) error {
	t.ops = append(t.ops, ledgerOp{Op: "transfer", From: from, To: to, Collection: collection, AssetId: assetId})
	return nil
}

func mapRpcError(rpcErr *RPCError) error {
	switch rpcErr.Code {
	case rpcErrInsufficientFunds:
		return ErrInsufficientFunds
	case rpcErrNotTokenOwner:
		return ErrNotTokenOwner
	case rpcErrUnknownAsset:
		return ErrUnknownAsset
	}

	return rpcErr
}
