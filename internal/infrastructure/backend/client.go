// Package backend is the REST client for the employee/time-report API that
// owns all durable state. The UI keeps only transient, re-fetchable copies of
// what this client returns.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk-web/internal/api/metrics"
	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/core/ports"
)

const (
	employeesPath   = "/api/employees"
	timeReportsPath = "/api/time-reports"

	dialTimeout           = 5 * time.Second
	tlsHandshakeTimeout   = 5 * time.Second
	responseHeaderTimeout = 10 * time.Second

	maxErrorBody = 512
)

// Client implements ports.BackendAPI over HTTP.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger zerolog.Logger
}

// New builds a Client for the given base URL. timeout bounds the whole
// round trip; redirects are not followed.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend base URL %q must be absolute", baseURL)
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   dialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   tlsHandshakeTimeout,
				ResponseHeaderTimeout: responseHeaderTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}, nil
}

// --- ports.EmployeeAPI ---

func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	if err := c.do(ctx, http.MethodGet, employeesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, input ports.CreateEmployeeInput) (*domain.Employee, error) {
	body := map[string]any{
		"name":    input.Name,
		"email":   input.Email,
		"isAdmin": input.IsAdmin,
	}
	var out domain.Employee
	if err := c.do(ctx, http.MethodPost, employeesPath, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, employeesPath+"/"+strconv.FormatInt(id, 10), nil, nil)
	if IsNotFound(err) {
		// The record is already gone on the backend; surface that as the
		// domain condition rather than a generic upstream failure.
		return fmt.Errorf("%w: %w", domain.ErrEmployeeNotFound, err)
	}
	return err
}

// --- ports.TimeReportAPI ---

// timeReportDoc tolerates both wire shapes for the owning employee: a flat
// employeeId or a nested {id,name} object. Display names are never taken
// from here; the join against the employee collection resolves them.
type timeReportDoc struct {
	ID         int64            `json:"id"`
	EmployeeID int64            `json:"employeeId"`
	Employee   *struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"employee"`
	StartTime  domain.Timestamp `json:"startTime"`
	EndTime    domain.Timestamp `json:"endTime"`
	IsApproved bool             `json:"isApproved"`
}

func (d timeReportDoc) toDomain() domain.TimeReport {
	employeeID := d.EmployeeID
	if employeeID == 0 && d.Employee != nil {
		employeeID = d.Employee.ID
	}
	return domain.TimeReport{
		ID:         d.ID,
		EmployeeID: employeeID,
		StartTime:  d.StartTime,
		EndTime:    d.EndTime,
		IsApproved: d.IsApproved,
	}
}

func (c *Client) ListTimeReports(ctx context.Context) ([]domain.TimeReport, error) {
	var docs []timeReportDoc
	if err := c.do(ctx, http.MethodGet, timeReportsPath, nil, &docs); err != nil {
		return nil, err
	}
	reports := make([]domain.TimeReport, 0, len(docs))
	for _, d := range docs {
		reports = append(reports, d.toDomain())
	}
	return reports, nil
}

func (c *Client) CreateTimeReport(ctx context.Context, input ports.CreateTimeReportInput) (*domain.TimeReport, error) {
	body := map[string]any{
		"employeeId": input.EmployeeID,
		"startTime":  input.StartTime.String(),
		"endTime":    input.EndTime.String(),
		"isApproved": false,
	}
	var doc timeReportDoc
	if err := c.do(ctx, http.MethodPost, timeReportsPath, body, &doc); err != nil {
		return nil, err
	}
	report := doc.toDomain()
	return &report, nil
}

func (c *Client) UpdateApproval(ctx context.Context, id int64, approved bool) (*domain.TimeReport, error) {
	body := map[string]any{"isApproved": approved}
	var doc timeReportDoc
	if err := c.do(ctx, http.MethodPatch, timeReportsPath+"/approve/"+strconv.FormatInt(id, 10), body, &doc); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrTimeReportNotFound, err)
		}
		return nil, err
	}
	report := doc.toDomain()
	return &report, nil
}

func (c *Client) DeleteTimeReport(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, timeReportsPath+"/"+strconv.FormatInt(id, 10), nil, nil)
	if IsNotFound(err) {
		return fmt.Errorf("%w: %w", domain.ErrTimeReportNotFound, err)
	}
	return err
}

// Ping issues a minimal request to confirm the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, employeesPath, nil, nil)
}

// do performs one round trip: marshal body, send, classify failures, decode
// JSON into out when non-nil. Callers see exactly two error shapes:
// *TransportError or *StatusError. Methods acting on a single record
// additionally tag 404s with the matching domain sentinel.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	target := c.base.JoinPath(path).String()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	resource := resourceLabel(path)

	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, resource, "transport_error").Inc()
		c.logger.Error().Err(err).Str("method", method).Str("url", target).Msg("backend request failed")
		return &TransportError{Op: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(method, resource, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.BackendRequestDuration.WithLabelValues(method, resource).Observe(elapsed.Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("url", target).
			Msg("backend rejected request")
		return &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("url", target).Msg("backend response unreadable")
		return &TransportError{Op: method, URL: target, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// resourceLabel collapses id-bearing paths to a stable metric label.
func resourceLabel(path string) string {
	switch {
	case strings.HasPrefix(path, timeReportsPath):
		return "time-reports"
	case strings.HasPrefix(path, employeesPath):
		return "employees"
	default:
		return "other"
	}
}
