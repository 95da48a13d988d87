package leadsapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"leadconsole/internal/domain"
)

const leadsPath = "/api/v1/leads"

// ListLeads fetches one page: GET /api/v1/leads?page=&limit=.
func (c *Client) ListLeads(ctx context.Context, page, limit int) (domain.LeadPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	b, err := c.do(ctx, "list", http.MethodGet, c.endpoint(leadsPath, q), nil, is2xx)
	if err != nil {
		return domain.LeadPage{}, err
	}

	var env struct {
		Data domain.LeadPage `json:"data"`
	}
	if err := decode("list", b, &env); err != nil {
		return domain.LeadPage{}, err
	}
	return env.Data, nil
}

// SearchLeads runs the free-text search. The result is not paginated.
func (c *Client) SearchLeads(ctx context.Context, keyword string) ([]domain.Lead, error) {
	q := url.Values{}
	q.Set("q", keyword)
	return c.leadSet(ctx, "search", c.endpoint(leadsPath+"/query", q))
}

// QueryLeads runs a structured filter. An empty params map means no filter.
func (c *Client) QueryLeads(ctx context.Context, params map[string]string) ([]domain.Lead, error) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return c.leadSet(ctx, "query", c.endpoint(leadsPath+"/allquery", q))
}

func (c *Client) leadSet(ctx context.Context, op string, u *url.URL) ([]domain.Lead, error) {
	b, err := c.do(ctx, op, http.MethodGet, u, nil, is2xx)
	if err != nil {
		return nil, err
	}
	var env struct {
		Data []domain.Lead `json:"data"`
	}
	if err := decode(op, b, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// CreateLead succeeds only on 201 Created.
func (c *Client) CreateLead(ctx context.Context, in domain.LeadInput) error {
	_, err := c.do(ctx, "create", http.MethodPost, c.endpoint(leadsPath, nil), in, exactly(http.StatusCreated))
	return err
}

func (c *Client) DeleteLead(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete", http.MethodDelete, c.endpoint(leadsPath+"/"+url.PathEscape(id), nil), nil, is2xx)
	return err
}
