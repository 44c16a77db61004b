package poetry

import (
	"context"

	"github.com/samvad-hq/poetrydb-api-tests/pkg/httpclient"
)

type LinesService struct {
	client httpclient.Requester
}

func NewLinesService(client httpclient.Requester) *LinesService {
	return &LinesService{client: ensureRequester(client)}
}

// GetPoemByTextInLines returns poems with at least one line containing text.
func (s *LinesService) GetPoemByTextInLines(ctx context.Context, text string) ([]Poem, *httpclient.Response, error) {
	return fetch(ctx, s.client, "LinesService.GetPoemByTextInLines", LinesByTextPath(text), ParsePoems)
}
