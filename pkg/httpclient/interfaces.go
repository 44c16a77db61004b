package httpclient

import (
	"context"

	"github.com/samvad-hq/poetrydb-api-tests/internal/domain"
)

// Requester is the read-only slice of Client that resource services use,
// so callers can inject fakes or differently configured clients.
type Requester interface {
	Get(ctx context.Context, endpoint string, req *Request) (*Response, error)
}

// ExchangeLogger receives every exchange issued through a Client.
type ExchangeLogger interface {
	LogAPICall(ctx context.Context, ex domain.Exchange)
	LogTransportError(ctx context.Context, ex domain.Exchange, err error)
}

type nopExchangeLogger struct{}

func (nopExchangeLogger) LogAPICall(context.Context, domain.Exchange)                {}
func (nopExchangeLogger) LogTransportError(context.Context, domain.Exchange, error) {}
