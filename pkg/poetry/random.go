package poetry

import (
	"context"
	"fmt"

	"github.com/samvad-hq/poetrydb-api-tests/pkg/httpclient"
)

type RandomService struct {
	client httpclient.Requester
}

func NewRandomService(client httpclient.Requester) *RandomService {
	return &RandomService{client: ensureRequester(client)}
}

// GetRandomPoem returns a one-element list holding a random poem.
func (s *RandomService) GetRandomPoem(ctx context.Context) ([]Poem, *httpclient.Response, error) {
	return fetch(ctx, s.client, "RandomService.GetRandomPoem", RandomPath(), ParsePoems)
}

// GetRandomPoems returns n random poems.
func (s *RandomService) GetRandomPoems(ctx context.Context, n int) ([]Poem, *httpclient.Response, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("random poem count must be positive, got %d", n)
	}
	return fetch(ctx, s.client, "RandomService.GetRandomPoems", RandomCountPath(n), ParsePoems)
}
