package proxies

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nzai/nseq/constants"
	"go.uber.org/zap"
)

// Doer describes an HTTP client.
//
//go:generate mockgen -package=proxies_test -destination=mock_doer_test.go -source=fetcher.go Doer
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Validator check a payload has the expected shape
type Validator func(payload []byte) error

// ExhaustedError returned when every endpoint failed
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("%s after %d attempts", constants.ErrAllProxiesExhausted, e.Attempts)
	}

	return fmt.Sprintf("%s after %d attempts: %v", constants.ErrAllProxiesExhausted, e.Attempts, e.Last)
}

// Unwrap match ErrAllProxiesExhausted and the last endpoint failure
func (e *ExhaustedError) Unwrap() []error {
	if e.Last == nil {
		return []error{constants.ErrAllProxiesExhausted}
	}

	return []error{constants.ErrAllProxiesExhausted, e.Last}
}

// Fetcher fetch json through relay endpoints, falling back in order
type Fetcher struct {
	doer      Doer
	endpoints []Endpoint
	timeout   time.Duration
	header    http.Header

	mutex     sync.Mutex
	preferred int
}

// FetcherOption is a configuration option for the fetcher
type FetcherOption func(*Fetcher)

// WithTimeout sets the per attempt timeout
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithUserAgent sets the user agent sent with each attempt
func WithUserAgent(userAgent string) FetcherOption {
	return func(f *Fetcher) {
		if userAgent != "" {
			f.header.Set("User-Agent", userAgent)
		}
	}
}

// WithHeader sets additional headers to be sent with each attempt
func WithHeader(header http.Header) FetcherOption {
	return func(f *Fetcher) {
		for key, values := range header {
			for _, value := range values {
				f.header.Add(key, value)
			}
		}
	}
}

// NewFetcher create fetcher over endpoints
func NewFetcher(doer Doer, endpoints []Endpoint, options ...FetcherOption) *Fetcher {
	fetcher := &Fetcher{
		doer:      doer,
		endpoints: endpoints,
		timeout:   constants.DefaultRequestTimeout,
		header:    http.Header{"Accept": []string{"application/json"}},
		preferred: -1,
	}

	for _, option := range options {
		option(fetcher)
	}

	return fetcher
}

// Endpoints return endpoints in the order the next fetch will try them
func (f *Fetcher) Endpoints() []Endpoint {
	indexes := f.order()
	endpoints := make([]Endpoint, 0, len(indexes))
	for _, index := range indexes {
		endpoints = append(endpoints, f.endpoints[index])
	}

	return endpoints
}

// order put the last successful endpoint first, keeping the rest in configured order
func (f *Fetcher) order() []int {
	f.mutex.Lock()
	preferred := f.preferred
	f.mutex.Unlock()

	indexes := make([]int, 0, len(f.endpoints))
	if preferred >= 0 {
		indexes = append(indexes, preferred)
	}

	for index := range f.endpoints {
		if index != preferred {
			indexes = append(indexes, index)
		}
	}

	return indexes
}

func (f *Fetcher) prefer(index int) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.preferred != index {
		zap.L().Debug("preferred endpoint changed", zap.String("endpoint", f.endpoints[index].Name))
	}
	f.preferred = index
}

// FetchJSON fetch target through the endpoints and return the first payload that passes validate
func (f *Fetcher) FetchJSON(ctx context.Context, target string, validate Validator) ([]byte, error) {
	var last error
	attempts := 0
	for _, index := range f.order() {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		endpoint := f.endpoints[index]
		attempts++

		payload, err := f.attempt(ctx, endpoint, target, validate)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			zap.L().Warn("fetch through endpoint failed",
				zap.Error(err),
				zap.String("endpoint", endpoint.Name),
				zap.String("target", target))
			last = err
			continue
		}

		f.prefer(index)
		return payload, nil
	}

	zap.L().Warn("all endpoints failed", zap.Error(last), zap.String("target", target), zap.Int("attempts", attempts))
	return nil, &ExhaustedError{Attempts: attempts, Last: last}
}

func (f *Fetcher) attempt(ctx context.Context, endpoint Endpoint, target string, validate Validator) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.URL(target), nil)
	if err != nil {
		return nil, err
	}

	for key, values := range f.header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	response, err := f.doer.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected response status (%d) %s", response.StatusCode, http.StatusText(response.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, constants.MaxResponseSize))
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty response body")
	}

	payload, err := endpoint.Open(body)
	if err != nil {
		return nil, fmt.Errorf("open %s envelope failed: %w", endpoint.Unwrap, err)
	}

	if validate == nil {
		if !sonic.Valid(payload) {
			return nil, fmt.Errorf("%w: response is not json", constants.ErrMalformedPayload)
		}
		return payload, nil
	}

	err = validate(payload)
	if err != nil {
		return nil, err
	}

	return payload, nil
}
