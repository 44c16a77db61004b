package poetry

import (
	"context"

	"github.com/samvad-hq/poetrydb-api-tests/pkg/httpclient"
)

// AuthorService covers the /author endpoints.
type AuthorService struct {
	client httpclient.Requester
}

func NewAuthorService(client httpclient.Requester) *AuthorService {
	return &AuthorService{client: ensureRequester(client)}
}

// GetAllAuthors lists every author name.
func (s *AuthorService) GetAllAuthors(ctx context.Context) (AuthorsResponse, *httpclient.Response, error) {
	return fetch(ctx, s.client, "AuthorService.GetAllAuthors", AuthorPath(), ParseAuthors)
}

// GetPoemsByAuthor returns all poems whose author matches name.
func (s *AuthorService) GetPoemsByAuthor(ctx context.Context, name string) ([]Poem, *httpclient.Response, error) {
	return fetch(ctx, s.client, "AuthorService.GetPoemsByAuthor", AuthorByNamePath(name), ParsePoems)
}
