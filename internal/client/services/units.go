package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ezymarket/adminctl/internal/client/api"
	"github.com/ezymarket/adminctl/internal/client/models"
)

// UnitsService manages measurement units.
type UnitsService struct {
	api *api.Client
}

func NewUnitsService(client *api.Client) *UnitsService {
	return &UnitsService{api: client}
}

// UnitInput is the payload for creating or updating a unit.
type UnitInput struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Type         string `json:"type,omitempty"`
}

// UnitSearchParams parameterize GET /units/search.
type UnitSearchParams struct {
	Query string
	Type  string
	Page  int
	Limit int
	Sort  string
}

func (p UnitSearchParams) query() url.Values {
	q := url.Values{}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	return q
}

func (s *UnitsService) List(ctx context.Context, p ListParams) (api.Page[models.Unit], error) {
	var page api.Page[models.Unit]
	if err := s.api.Get(ctx, "/units", p.query(), &page); err != nil {
		return api.Page[models.Unit]{}, fmt.Errorf("list units: %w", err)
	}
	return page, nil
}

func (s *UnitsService) Search(ctx context.Context, p UnitSearchParams) (api.Page[models.Unit], error) {
	var page api.Page[models.Unit]
	if err := s.api.Get(ctx, "/units/search", p.query(), &page); err != nil {
		return api.Page[models.Unit]{}, fmt.Errorf("search units: %w", err)
	}
	return page, nil
}

func (s *UnitsService) Get(ctx context.Context, id int64) (*models.Unit, error) {
	var unit models.Unit
	if err := s.api.Get(ctx, fmt.Sprintf("/units/%d", id), nil, &unit); err != nil {
		return nil, fmt.Errorf("get unit %d: %w", id, err)
	}
	return &unit, nil
}

// ByType lists every unit of one type.
func (s *UnitsService) ByType(ctx context.Context, unitType string) ([]models.Unit, error) {
	var page api.Page[models.Unit]
	if err := s.api.Get(ctx, "/units/type/"+url.PathEscape(unitType), nil, &page); err != nil {
		return nil, fmt.Errorf("list units of type %q: %w", unitType, err)
	}
	return page.Items, nil
}

// Stats returns the unit totals shown on the dashboard.
func (s *UnitsService) Stats(ctx context.Context) (*models.UnitStats, error) {
	var stats models.UnitStats
	if err := s.api.Get(ctx, "/units/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("unit stats: %w", err)
	}
	return &stats, nil
}

func (s *UnitsService) Create(ctx context.Context, in UnitInput) (*models.Unit, error) {
	var unit models.Unit
	if err := s.api.Post(ctx, "/units", in, &unit); err != nil {
		return nil, fmt.Errorf("create unit: %w", err)
	}
	return &unit, nil
}

func (s *UnitsService) Update(ctx context.Context, id int64, in UnitInput) (*models.Unit, error) {
	var unit models.Unit
	if err := s.api.Put(ctx, fmt.Sprintf("/units/%d", id), in, &unit); err != nil {
		return nil, fmt.Errorf("update unit %d: %w", id, err)
	}
	return &unit, nil
}

func (s *UnitsService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/units/%d", id), nil); err != nil {
		return fmt.Errorf("delete unit %d: %w", id, err)
	}
	return nil
}

// BatchDelete removes several units in one call.
func (s *UnitsService) BatchDelete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	body := struct {
		IDs []int64 `json:"ids"`
	}{IDs: ids}
	if err := s.api.Post(ctx, "/units/batch-delete", body, nil); err != nil {
		return fmt.Errorf("batch delete units: %w", err)
	}
	return nil
}
