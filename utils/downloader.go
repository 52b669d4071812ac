package utils

import (
	"net"
	"net/http"
	"time"
)

// Downloader http client with tuned transport and default headers
type Downloader struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string
}

// NewDownloader create downloader, timeout bounds a whole request
func NewDownloader(timeout time.Duration, userAgent string) *Downloader {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	return &Downloader{
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		UserAgent: userAgent,
	}
}

// Do send request, filling headers the request does not set
func (d *Downloader) Do(request *http.Request) (*http.Response, error) {
	if d.UserAgent != "" && request.Header.Get("User-Agent") == "" {
		request.Header.Set("User-Agent", d.UserAgent)
	}

	for key, value := range d.Headers {
		if request.Header.Get(key) == "" {
			request.Header.Set(key, value)
		}
	}

	return d.HTTP.Do(request)
}
