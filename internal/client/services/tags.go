package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ezymarket/adminctl/internal/client/api"
	"github.com/ezymarket/adminctl/internal/client/models"
)

// TagsService manages recipe tags. Admins create and edit system tags;
// personal tags are listed but owned by their users.
type TagsService struct {
	api *api.Client
}

func NewTagsService(client *api.Client) *TagsService {
	return &TagsService{api: client}
}

// TagInput is the payload for creating or updating a tag.
type TagInput struct {
	Name string `json:"name"`
}

func (s *TagsService) List(ctx context.Context) ([]models.Tag, error) {
	var page api.Page[models.Tag]
	if err := s.api.Get(ctx, "/tags", nil, &page); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return page.Items, nil
}

// Suggest returns tag suggestions for the query. A blank query
// short-circuits to an empty result.
func (s *TagsService) Suggest(ctx context.Context, query string) ([]models.Tag, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("q", query)

	var page api.Page[models.Tag]
	if err := s.api.Get(ctx, "/tags/suggest", q, &page); err != nil {
		return nil, fmt.Errorf("suggest tags: %w", err)
	}
	return page.Items, nil
}

func (s *TagsService) Create(ctx context.Context, in TagInput) (*models.Tag, error) {
	var tag models.Tag
	if err := s.api.Post(ctx, "/tags", in, &tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return &tag, nil
}

func (s *TagsService) Update(ctx context.Context, id int64, in TagInput) (*models.Tag, error) {
	var tag models.Tag
	if err := s.api.Put(ctx, fmt.Sprintf("/tags/%d", id), in, &tag); err != nil {
		return nil, fmt.Errorf("update tag %d: %w", id, err)
	}
	return &tag, nil
}

func (s *TagsService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/tags/%d", id), nil); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	return nil
}
