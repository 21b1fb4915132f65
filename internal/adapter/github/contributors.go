package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentlens/talentlens/internal/domain"
	"github.com/talentlens/talentlens/internal/port"
)

// ListContributors returns every contributor of the repository, fully
// paginated. A missing repository surfaces as port.ErrRepositoryNotFound.
func (c *Client) ListContributors(ctx context.Context, ref domain.RepositoryRef) ([]domain.Contributor, error) {
	path := fmt.Sprintf("/repos/%s/%s/contributors", ref.Owner, ref.Name)

	wires, err := fetchAllPages[contributorWire](ctx, c, path, nil)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", ref, port.ErrRepositoryNotFound)
		}
		return nil, err
	}

	contributors := make([]domain.Contributor, 0, len(wires))
	for _, w := range wires {
		contributors = append(contributors, w.toDomain())
	}
	return contributors, nil
}

// GetUser fetches a user's public profile.
func (c *Client) GetUser(ctx context.Context, login string) (*domain.UserProfile, error) {
	var w userWire
	if err := c.get(ctx, "/users/"+login, &w); err != nil {
		return nil, err
	}
	return &domain.UserProfile{
		Login:       w.Login,
		Type:        w.Type,
		PublicRepos: w.PublicRepos,
	}, nil
}
