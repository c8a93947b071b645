package ethereum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kjannette/ifsol-backend/internal/external"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

// fakeFeed answers decimals() and latestRoundData() by method selector.
type fakeFeed struct {
	o         *Oracle
	answer    *big.Int
	updatedAt time.Time
	err       error
	calls     map[string]int
}

func (f *fakeFeed) CallContract(_ context.Context, _ common.Address, data []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	for name, m := range f.o.abi.Methods {
		if !bytes.Equal(data[:4], m.ID) {
			continue
		}
		f.calls[name]++
		switch name {
		case "decimals":
			return m.Outputs.Pack(uint8(8))
		case "latestRoundData":
			ts := big.NewInt(f.updatedAt.Unix())
			return m.Outputs.Pack(big.NewInt(42), f.answer, ts, ts, big.NewInt(42))
		}
	}
	return nil, fmt.Errorf("unexpected call data %x", data)
}

func newTestOracle(t *testing.T, answer int64, updatedAt time.Time) (*Oracle, *fakeFeed) {
	t.Helper()
	feed := &fakeFeed{answer: big.NewInt(answer), updatedAt: updatedAt, calls: map[string]int{}}
	o, err := NewOracle(feed, "")
	require.NoError(t, err)
	o.now = func() time.Time { return testNow }
	feed.o = o
	return o, feed
}

func TestOracle_SpotPrice(t *testing.T) {
	o, feed := newTestOracle(t, 14237000000, testNow.Add(-time.Hour))

	p, err := o.SpotPrice(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 142.37, p, 1e-9)

	_, err = o.SpotPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, feed.calls["decimals"])
	assert.Equal(t, 2, feed.calls["latestRoundData"])
	assert.Equal(t, "chainlink", o.Name())
}

func TestOracle_Stale(t *testing.T) {
	o, _ := newTestOracle(t, 14237000000, testNow.Add(-48*time.Hour))

	_, err := o.SpotPrice(context.Background())
	assert.ErrorIs(t, err, ErrStaleRound)
}

func TestOracle_NonPositiveAnswer(t *testing.T) {
	o, _ := newTestOracle(t, 0, testNow)

	_, err := o.SpotPrice(context.Background())
	assert.ErrorIs(t, err, external.ErrMalformedPayload)
}

func TestOracle_CallError(t *testing.T) {
	o, feed := newTestOracle(t, 1, testNow)
	feed.err = errors.New("rpc unavailable")

	_, err := o.SpotPrice(context.Background())
	assert.ErrorContains(t, err, "rpc unavailable")
}

func TestNewOracle_BadAddress(t *testing.T) {
	_, err := NewOracle(nil, "not-an-address")
	assert.Error(t, err)
}

// The oracle works end to end against a JSON-RPC endpoint.
func TestOracle_OverJSONRPC(t *testing.T) {
	probe, err := NewOracle(nil, "")
	require.NoError(t, err)
	feed := &fakeFeed{o: probe, answer: big.NewInt(15000000000), updatedAt: time.Now(), calls: map[string]int{}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Method != "eth_call" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		var msg struct {
			To    string `json:"to"`
			Data  string `json:"data"`
			Input string `json:"input"`
		}
		_ = json.Unmarshal(req.Params[0], &msg)
		data := msg.Input
		if data == "" {
			data = msg.Data
		}

		out, err := feed.CallContract(r.Context(), common.HexToAddress(msg.To), common.FromHex(data))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  fmt.Sprintf("0x%x", out),
		})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	defer client.Close()

	o, err := NewOracle(client, DefaultSOLUSDFeed)
	require.NoError(t, err)

	p, err := o.SpotPrice(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 150.0, p, 1e-9)
}
