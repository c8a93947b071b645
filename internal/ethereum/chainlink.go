package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/kjannette/ifsol-backend/internal/external"
)

// DefaultSOLUSDFeed is the Chainlink SOL/USD aggregator on Ethereum mainnet.
const DefaultSOLUSDFeed = "0x4ffC43a60e009B551865A93d232E33Fce9f01507"

const defaultMaxAge = 26 * time.Hour

var ErrStaleRound = errors.New("oracle round is stale")

// ContractCaller runs read-only contract calls.
type ContractCaller interface {
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)
}

// Oracle reads the latest answer of a Chainlink price feed.
type Oracle struct {
	caller ContractCaller
	feed   common.Address
	abi    abi.ABI
	maxAge time.Duration
	now    func() time.Time

	mu       sync.Mutex
	decimals *uint8
}

func NewOracle(caller ContractCaller, feedAddr string) (*Oracle, error) {
	if feedAddr == "" {
		feedAddr = DefaultSOLUSDFeed
	}
	if !common.IsHexAddress(feedAddr) {
		return nil, fmt.Errorf("invalid feed address %q", feedAddr)
	}
	parsed, err := abi.JSON(aggregatorABI())
	if err != nil {
		return nil, fmt.Errorf("parse aggregator ABI: %w", err)
	}
	return &Oracle{
		caller: caller,
		feed:   common.HexToAddress(feedAddr),
		abi:    parsed,
		maxAge: defaultMaxAge,
		now:    time.Now,
	}, nil
}

func (o *Oracle) Name() string { return "chainlink" }

// SpotPrice returns the feed's latest answer scaled by its decimals.
func (o *Oracle) SpotPrice(ctx context.Context) (float64, error) {
	dec, err := o.feedDecimals(ctx)
	if err != nil {
		return 0, err
	}

	outs, err := o.call(ctx, "latestRoundData")
	if err != nil {
		return 0, err
	}
	if len(outs) != 5 {
		return 0, fmt.Errorf("%w: latestRoundData returned %d values", external.ErrMalformedPayload, len(outs))
	}
	answer, ok1 := outs[1].(*big.Int)
	updatedAt, ok2 := outs[3].(*big.Int)
	if !ok1 || !ok2 || answer.Sign() <= 0 {
		return 0, fmt.Errorf("%w: bad latestRoundData answer", external.ErrMalformedPayload)
	}

	updated := time.Unix(updatedAt.Int64(), 0)
	if age := o.now().Sub(updated); age > o.maxAge {
		return 0, fmt.Errorf("%w: updated %s ago", ErrStaleRound, age.Round(time.Minute))
	}

	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(dec)), nil))
	price, _ := new(big.Float).Quo(new(big.Float).SetInt(answer), scale).Float64()
	return price, nil
}

// feedDecimals is fetched once per Oracle.
func (o *Oracle) feedDecimals(ctx context.Context) (uint8, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.decimals != nil {
		return *o.decimals, nil
	}

	outs, err := o.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	if len(outs) != 1 {
		return 0, fmt.Errorf("%w: decimals returned %d values", external.ErrMalformedPayload, len(outs))
	}
	d, ok := outs[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%w: decimals is %T", external.ErrMalformedPayload, outs[0])
	}
	o.decimals = &d
	fmt.Printf("[ORACLE] Feed %s has %d decimals\n", o.feed.Hex(), d)
	return d, nil
}

func (o *Oracle) call(ctx context.Context, method string) ([]interface{}, error) {
	data, err := o.abi.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	raw, err := o.caller.CallContract(ctx, o.feed, data)
	if err != nil {
		return nil, fmt.Errorf("%s call: %w", method, err)
	}
	outs, err := o.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: unpack %s: %v", external.ErrMalformedPayload, method, err)
	}
	return outs, nil
}
