package poetry

import (
	"context"

	"github.com/samvad-hq/poetrydb-api-tests/pkg/httpclient"
)

// TitleService covers the /title endpoints.
type TitleService struct {
	client httpclient.Requester
}

func NewTitleService(client httpclient.Requester) *TitleService {
	return &TitleService{client: ensureRequester(client)}
}

func (s *TitleService) GetAllTitles(ctx context.Context) (TitlesResponse, *httpclient.Response, error) {
	return fetch(ctx, s.client, "TitleService.GetAllTitles", TitlePath(), ParseTitles)
}

// GetPoemByTitle returns the poems whose title contains title. PoetryDB
// matches substrings, so a partial title finds the same poem as the full one.
func (s *TitleService) GetPoemByTitle(ctx context.Context, title string) ([]Poem, *httpclient.Response, error) {
	return fetch(ctx, s.client, "TitleService.GetPoemByTitle", TitleByNamePath(title), ParsePoems)
}

// GetPoemByExactTitle only matches the full title.
func (s *TitleService) GetPoemByExactTitle(ctx context.Context, title string) ([]Poem, *httpclient.Response, error) {
	return fetch(ctx, s.client, "TitleService.GetPoemByExactTitle", TitleExactPath(title), ParsePoems)
}
