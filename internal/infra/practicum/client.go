// Package practicum implements the homework review API client over HTTP.
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainPracticum "homework_status_bot/internal/domain/practicum"

	"github.com/pkg/errors"
	"golang.org/x/net/http2"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// HTTPClient implements the practicum.Client interface.
type HTTPClient struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewHTTPClient builds a client whose transport negotiates HTTP/2 over TLS.
func NewHTTPClient(endpoint, token string, timeout time.Duration) (*HTTPClient, error) {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, errors.Wrap(err, "failed to configure HTTP/2 transport")
	}
	return NewHTTPClientWith(endpoint, token, &http.Client{Transport: transport, Timeout: timeout}), nil
}

// NewHTTPClientWith uses the given http.Client as is.
func NewHTTPClientWith(endpoint, token string, hc *http.Client) *HTTPClient {
	return &HTTPClient{endpoint: endpoint, token: token, http: hc}
}

// HomeworkStatuses requests statuses changed since fromDate.
// Errors are *practicum.TransportError, *practicum.ResponseError or *homework.SchemaError.
func (c *HTTPClient) HomeworkStatuses(ctx context.Context, fromDate int64) (any, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &domainPracticum.TransportError{Endpoint: c.endpoint, Err: errors.Wrap(err, "bad endpoint")}
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domainPracticum.TransportError{Endpoint: c.endpoint, Err: errors.Wrap(err, "failed to build request")}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domainPracticum.TransportError{Endpoint: c.endpoint, Err: errors.Wrap(err, "GET homework statuses")}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &domainPracticum.ResponseError{Endpoint: c.endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domainPracticum.TransportError{Endpoint: c.endpoint, Err: errors.Wrap(err, "read response body")}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, &homework.SchemaError{Reason: homework.ErrInvalidJSON, Got: err.Error()}
	}
	return payload, nil
}
