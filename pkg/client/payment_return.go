package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// paymentReturnAliases are the query parameter names Mercado Pago has used
// across redirect versions for the gateway payment id.
var paymentReturnAliases = []string{"payment_id", "collection_id", "paymentId"}

// PaymentIDFromReturn extracts the gateway payment id from a checkout
// return URL's query, trying each known alias in order. Empty and literal
// "null" values are skipped.
func PaymentIDFromReturn(query url.Values) string {
	for _, key := range paymentReturnAliases {
		v := strings.TrimSpace(query.Get(key))
		if v != "" && v != "null" && v != "undefined" {
			return v
		}
	}
	return ""
}

// ResolvePaymentReturn looks up the status for a checkout return. It makes
// exactly one status request; if ctx is cancelled before the response
// arrives, the call returns ctx's error and the late response is dropped.
func (c *Client) ResolvePaymentReturn(ctx context.Context, query url.Values) (*PaymentStatus, error) {
	id := PaymentIDFromReturn(query)
	if id == "" {
		return nil, fmt.Errorf("no payment id in return query")
	}

	st, err := c.PaymentStatus(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return st, nil
}
