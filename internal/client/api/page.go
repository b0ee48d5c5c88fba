package api

import (
	"bytes"
	"encoding/json"
)

// Data is the {"data": ...} envelope some endpoints wrap single objects in.
type Data[T any] struct {
	Data T `json:"data"`
}

// Page is a normalized list response. The backend is not consistent about
// list envelopes, so Page absorbs every variant it emits:
//
//	{"data": [...], "total": N}
//	{"data": [...], "pagination": {"total": N, "page": P, "limit": L}}
//	[...]
//
// When no total is present the item count is used.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}

func (p *Page[T]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		p.Items = items
		p.Total = len(items)
		return nil
	}

	var env struct {
		Data       []T `json:"data"`
		Total      int `json:"total"`
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Pagination *struct {
			Total int `json:"total"`
			Page  int `json:"page"`
			Limit int `json:"limit"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return err
	}

	p.Items = env.Data
	p.Total = env.Total
	p.Page = env.Page
	p.Limit = env.Limit
	if pg := env.Pagination; pg != nil {
		if pg.Total != 0 {
			p.Total = pg.Total
		}
		if pg.Page != 0 {
			p.Page = pg.Page
		}
		if pg.Limit != 0 {
			p.Limit = pg.Limit
		}
	}
	if p.Total == 0 {
		p.Total = len(p.Items)
	}
	return nil
}
