package services

import (
	"context"
	"fmt"

	"github.com/ezymarket/adminctl/internal/client/api"
	"github.com/ezymarket/adminctl/internal/client/models"
)

// GroupsService manages household groups via the /admin/groups endpoints.
type GroupsService struct {
	api *api.Client
}

func NewGroupsService(client *api.Client) *GroupsService {
	return &GroupsService{api: client}
}

// GroupInput is the payload for updating a group.
type GroupInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type memberRequest struct {
	UserID int64 `json:"userId"`
}

func (s *GroupsService) List(ctx context.Context, p ListParams) (api.Page[models.Group], error) {
	var page api.Page[models.Group]
	if err := s.api.Get(ctx, "/admin/groups", p.query(), &page); err != nil {
		return api.Page[models.Group]{}, fmt.Errorf("list groups: %w", err)
	}
	return page, nil
}

func (s *GroupsService) Get(ctx context.Context, id int64) (*models.Group, error) {
	var resp api.Data[*models.Group]
	if err := s.api.Get(ctx, fmt.Sprintf("/admin/groups/%d", id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get group %d: %w", id, err)
	}
	return resp.Data, nil
}

func (s *GroupsService) Update(ctx context.Context, id int64, in GroupInput) (*models.Group, error) {
	var resp api.Data[*models.Group]
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/groups/%d", id), in, &resp); err != nil {
		return nil, fmt.Errorf("update group %d: %w", id, err)
	}
	return resp.Data, nil
}

func (s *GroupsService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/admin/groups/%d", id), nil); err != nil {
		return fmt.Errorf("delete group %d: %w", id, err)
	}
	return nil
}

// AddMember adds the user to the group.
func (s *GroupsService) AddMember(ctx context.Context, groupID, userID int64) error {
	path := fmt.Sprintf("/admin/groups/%d/members", groupID)
	if err := s.api.Post(ctx, path, memberRequest{UserID: userID}, nil); err != nil {
		return fmt.Errorf("add member %d to group %d: %w", userID, groupID, err)
	}
	return nil
}

// RemoveMember removes the user from the group. The member id travels in
// the request body, matching the backend's DELETE contract.
func (s *GroupsService) RemoveMember(ctx context.Context, groupID, userID int64) error {
	path := fmt.Sprintf("/admin/groups/%d/members", groupID)
	if err := s.api.Delete(ctx, path, memberRequest{UserID: userID}); err != nil {
		return fmt.Errorf("remove member %d from group %d: %w", userID, groupID, err)
	}
	return nil
}
