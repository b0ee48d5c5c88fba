package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ezymarket/adminctl/internal/client/api"
	"github.com/ezymarket/adminctl/internal/client/models"
)

// ListParams are the paging/search parameters shared by the admin list
// endpoints. Zero values are omitted from the query.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// UsersService manages platform accounts via the /admin/users endpoints.
type UsersService struct {
	api *api.Client
}

func NewUsersService(client *api.Client) *UsersService {
	return &UsersService{api: client}
}

// UserInput is the payload for creating or updating a user. Password is
// only sent on create.
type UserInput struct {
	Email    string `json:"email,omitempty"`
	UserName string `json:"userName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (s *UsersService) List(ctx context.Context, p ListParams) (api.Page[models.User], error) {
	var page api.Page[models.User]
	if err := s.api.Get(ctx, "/admin/users", p.query(), &page); err != nil {
		return api.Page[models.User]{}, fmt.Errorf("list users: %w", err)
	}
	return page, nil
}

func (s *UsersService) Get(ctx context.Context, id int64) (*models.User, error) {
	var resp api.Data[*models.User]
	if err := s.api.Get(ctx, fmt.Sprintf("/admin/users/%d", id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return resp.Data, nil
}

func (s *UsersService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	var resp api.Data[*models.User]
	if err := s.api.Post(ctx, "/admin/users", in, &resp); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return resp.Data, nil
}

func (s *UsersService) Update(ctx context.Context, id int64, in UserInput) (*models.User, error) {
	var resp api.Data[*models.User]
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/users/%d", id), in, &resp); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return resp.Data, nil
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/admin/users/%d", id), nil); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
