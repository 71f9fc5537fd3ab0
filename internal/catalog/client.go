// Package catalog はカタログAPIのHTTPクライアントと一覧表示用のヘルパー。
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain/model"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("product not found")

// APIError は2xx以外の応答
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog api: status %d", e.Status)
	}
	return fmt.Sprintf("catalog api: status %d: %s", e.Status, e.Message)
}

// 404は ErrNotFound として扱える
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// baseURLは /api まで含める（例: http://localhost:5000/api）
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "catalog",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return c
}

// 4xxはサーバー障害ではないので失敗に数えない
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status < http.StatusInternalServerError
	}
	return errors.Is(err, context.Canceled)
}

type ListParams struct {
	Page   int
	Limit  int
	Search string
}

type ListResult struct {
	Products []model.Product
	Count    int
	Total    int64
	Page     int
	Pages    int
}

type listEnvelope struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Pages   int               `json:"pages"`
	Data    []json.RawMessage `json:"data"`
}

type itemEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Message string `json:"message"`
}

func (c *Client) ListProducts(ctx context.Context, p ListParams) (ListResult, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if s := strings.TrimSpace(p.Search); s != "" {
		q.Set("search", s)
	}

	body, err := c.get(ctx, "/products", q)
	if err != nil {
		return ListResult{}, err
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ListResult{}, fmt.Errorf("decode product list: %w", err)
	}

	products := make([]model.Product, 0, len(env.Data))
	for _, raw := range env.Data {
		prod, err := decodeProduct(raw)
		if err != nil {
			return ListResult{}, err
		}
		products = append(products, prod)
	}

	return ListResult{
		Products: products,
		Count:    env.Count,
		Total:    env.Total,
		Page:     env.Page,
		Pages:    env.Pages,
	}, nil
}

// GetProduct はIDかslugで1件取得する。
func (c *Client) GetProduct(ctx context.Context, idOrSlug string) (model.Product, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return model.Product{}, ErrNotFound
	}

	body, err := c.get(ctx, "/products/"+url.PathEscape(idOrSlug), nil)
	if err != nil {
		return model.Product{}, err
	}

	var env itemEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return model.Product{}, fmt.Errorf("decode product: %w", err)
	}
	return decodeProduct(env.Data)
}

// ListAll は全ページをたどって一覧を返す。
func (c *Client) ListAll(ctx context.Context) ([]model.Product, error) {
	var all []model.Product
	for page := 1; ; page++ {
		res, err := c.ListProducts(ctx, ListParams{Page: page, Limit: 100})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Products...)
		if page >= res.Pages || len(res.Products) == 0 {
			return all, nil
		}
	}
}

// _id と id のどちらでも受け付ける
func decodeProduct(raw json.RawMessage) (model.Product, error) {
	var p model.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Product{}, fmt.Errorf("decode product: %w", err)
	}
	if p.ID == "" {
		var alt struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &alt); err == nil {
			p.ID = alt.ID
		}
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, http.MethodGet, path, q)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("catalog unavailable: %w", err)
	}
	return body, err
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("catalog request",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env errorEnvelope
		if json.Unmarshal(body, &env) == nil {
			apiErr.Message = env.Message
		}
		return nil, apiErr
	}
	return body, nil
}
