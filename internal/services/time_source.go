package services

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// TimeSource is one ranked provider of wall-clock time for the lock
// engine. Implementations must respect the context deadline.
type TimeSource interface {
	Name() string
	Now(ctx context.Context) (time.Time, error)
}

var errNoDateHeader = errors.New("response carried no Date header")

// HTTPTimeSource reads the Date header from an HTTP response. Any
// well-behaved server works as a source; no payload parsing involved.
type HTTPTimeSource struct {
	url    string
	client *http.Client
}

func NewHTTPTimeSource(url string) *HTTPTimeSource {
	return &HTTPTimeSource{
		url:    url,
		client: &http.Client{},
	}
}

func (s *HTTPTimeSource) Name() string {
	return s.url
}

func (s *HTTPTimeSource) Now(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url, nil)
	if err != nil {
		return time.Time{}, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()

	header := resp.Header.Get("Date")
	if header == "" {
		return time.Time{}, errNoDateHeader
	}
	return http.ParseTime(header)
}

// NewHTTPTimeSources builds a ranked source list from configured URLs.
func NewHTTPTimeSources(urls []string) []TimeSource {
	sources := make([]TimeSource, 0, len(urls))
	for _, url := range urls {
		sources = append(sources, NewHTTPTimeSource(url))
	}
	return sources
}
