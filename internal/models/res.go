package models

import (
	"encoding/json"
)

// ApiResponse is the upstream JSON envelope. Fields are present as
// applicable to the endpoint.
type ApiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Token   string          `json:"token,omitempty"`
	User    *User           `json:"user,omitempty"`
	Page    int             `json:"page,omitempty"`
	Pages   int             `json:"pages,omitempty"`
	Total   int             `json:"total,omitempty"`
	Count   int             `json:"count,omitempty"`
}

// DecodeData unmarshals the data member into v. A missing data member leaves
// v untouched.
func (r *ApiResponse) DecodeData(v any) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

func (r *ApiResponse) Pagination() Pagination {
	p := Pagination{Page: r.Page, Pages: r.Pages, Total: r.Total, Count: r.Count}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Pages < 1 {
		p.Pages = 1
	}
	return p
}

type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
	Count int `json:"count"`
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.Pages }

// PageNumbers lists the page links to show around the current page.
func (p Pagination) PageNumbers() []int {
	const window = 2
	start, end := p.Page-window, p.Page+window
	if start < 1 {
		start = 1
	}
	if end > p.Pages {
		end = p.Pages
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

// AppResponse is the envelope served by the front-end's own /app/api
// endpoints. It mirrors the upstream shape.
type AppResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Page    int         `json:"page,omitempty"`
	Pages   int         `json:"pages,omitempty"`
	Total   int         `json:"total,omitempty"`
	Count   int         `json:"count,omitempty"`
}

func SuccessResponse(data interface{}, message string) AppResponse {
	return AppResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) AppResponse {
	return AppResponse{
		Success: false,
		Message: err,
	}
}

func PaginatedResponse(data interface{}, p Pagination) AppResponse {
	return AppResponse{
		Success: true,
		Data:    data,
		Page:    p.Page,
		Pages:   p.Pages,
		Total:   p.Total,
		Count:   p.Count,
	}
}
