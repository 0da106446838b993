package push

import (
	"context"
)

// MaxTokensPerCall is the FCM ceiling for one multicast call. The
// configured fan-out chunk size must never exceed it.
const MaxTokensPerCall = 500

// Message is one notification payload to deliver to a batch of tokens.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// TokenResult is the gateway's verdict for one token in a batch.
type TokenResult struct {
	Token   string
	Success bool
	Error   string
}

// BatchResponse is the gateway's answer to one multicast call.
type BatchResponse struct {
	SuccessCount int
	FailureCount int
	Results      []TokenResult
}

// FailedTokens returns the tokens the gateway rejected in this batch.
func (r *BatchResponse) FailedTokens() []string {
	var failed []string
	for _, res := range r.Results {
		if !res.Success {
			failed = append(failed, res.Token)
		}
	}
	return failed
}

// Gateway delivers one message to a bounded batch of device tokens and
// reports per-token success or failure. A returned error means the whole
// batch call failed; per-token failures ride inside the BatchResponse.
type Gateway interface {
	SendMulticast(ctx context.Context, tokens []string, msg Message) (*BatchResponse, error)
}
