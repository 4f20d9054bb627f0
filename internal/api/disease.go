package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"covid-dashboard/internal/config"
	"covid-dashboard/internal/domain"

	"github.com/valyala/fasthttp"
)

// DiseaseClient reads the public disease.sh COVID-19 endpoints.
type DiseaseClient struct {
	baseURL        string
	historicalDays int
	client         *fasthttp.Client
}

func NewDiseaseClient(cfg *config.Config) *DiseaseClient {
	return &DiseaseClient{
		baseURL:        strings.TrimRight(cfg.DiseaseAPIBase, "/"),
		historicalDays: cfg.HistoricalDays,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
			// /countries is a few hundred KB uncompressed.
			MaxResponseBodySize: 32 << 20,
		},
	}
}

func (c *DiseaseClient) GetGlobal(ctx context.Context) (*domain.GlobalStats, error) {
	return doRequest[domain.GlobalStats](ctx, c, c.baseURL+"/all")
}

func (c *DiseaseClient) GetCountries(ctx context.Context) ([]domain.Region, error) {
	regions, err := doRequest[[]domain.Region](ctx, c, c.baseURL+"/countries")
	if err != nil {
		return nil, err
	}
	return *regions, nil
}

func (c *DiseaseClient) GetHistorical(ctx context.Context) (*domain.HistoricalResponse, error) {
	url := fmt.Sprintf("%s/historical/all?lastdays=%d", c.baseURL, c.historicalDays)
	return doRequest[domain.HistoricalResponse](ctx, c, url)
}

// APIError is a non-200 upstream reply.
type APIError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

func doRequest[T any](ctx context.Context, client *DiseaseClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		apiErr := &APIError{URL: url, StatusCode: resp.StatusCode()}
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(resp.Body(), &body) == nil {
			apiErr.Message = body.Message
		}
		return nil, apiErr
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("malformed response from %s: %w", url, err)
	}
	return &result, nil
}
