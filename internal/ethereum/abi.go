package ethereum

import (
	"io"
	"strings"
)

// Minimal Chainlink AggregatorV3Interface ABI: only the methods we call.
func aggregatorABI() io.Reader {
	return strings.NewReader(`[
		{
			"name": "decimals",
			"type": "function",
			"stateMutability": "view",
			"inputs": [],
			"outputs": [{"name": "", "type": "uint8"}]
		},
		{
			"name": "latestRoundData",
			"type": "function",
			"stateMutability": "view",
			"inputs": [],
			"outputs": [
				{"name": "roundId",         "type": "uint80"},
				{"name": "answer",          "type": "int256"},
				{"name": "startedAt",       "type": "uint256"},
				{"name": "updatedAt",       "type": "uint256"},
				{"name": "answeredInRound", "type": "uint80"}
			]
		}
	]`)
}
