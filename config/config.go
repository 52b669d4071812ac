package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nzai/nseq/constants"
	"github.com/nzai/nseq/proxies"
)

const (
	defaultChartURL    = "https://query1.finance.yahoo.com/v8/finance/chart/"
	defaultSearchURL   = "https://query1.finance.yahoo.com/v1/finance/search"
	defaultInterval    = "1d"
	defaultRange       = "1d"
	defaultQuotesCount = 6

	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 7
)

// Config global config
type Config struct {
	RefreshSeconds        int     `toml:"refresh_seconds"`
	MaxFailedAttempts     int     `toml:"max_failed_attempts"`
	RequestTimeoutSeconds int     `toml:"request_timeout_seconds"`
	UserAgent             string  `toml:"user_agent"`
	Yahoo                 Yahoo   `toml:"yahoo"`
	Proxies               []Proxy `toml:"proxies"`
	Log                   Log     `toml:"log"`
	Nsq                   Nsq     `toml:"nsq"`
}

// Yahoo yahoo finance endpoints
type Yahoo struct {
	ChartURL    string `toml:"chart_url"`
	SearchURL   string `toml:"search_url"`
	Interval    string `toml:"interval"`
	Range       string `toml:"range"`
	QuotesCount int    `toml:"quotes_count"`
}

// Proxy relay endpoint, an empty base requests yahoo directly
type Proxy struct {
	Name   string `toml:"name"`
	Base   string `toml:"base"`
	Unwrap string `toml:"unwrap"`
}

// Log log output
type Log struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
}

// Nsq snapshot publisher
type Nsq struct {
	Enabled bool   `toml:"enabled"`
	Broker  string `toml:"broker"`
	Topic   string `toml:"topic"`
	TLSCert string `toml:"tls_cert"`
	TLSKey  string `toml:"tls_key"`
}

// Valid validate config and fill defaults
func (s *Config) Valid() error {
	if s.RefreshSeconds < 0 {
		return errors.New("refresh_seconds must not be negative")
	}

	if s.RefreshSeconds == 0 {
		s.RefreshSeconds = int(constants.DefaultRefreshInterval / time.Second)
	}

	if s.MaxFailedAttempts < 0 {
		return errors.New("max_failed_attempts must not be negative")
	}

	if s.MaxFailedAttempts == 0 {
		s.MaxFailedAttempts = constants.DefaultMaxFailedAttempts
	}

	if s.RequestTimeoutSeconds < 0 {
		return errors.New("request_timeout_seconds must not be negative")
	}

	if s.RequestTimeoutSeconds == 0 {
		s.RequestTimeoutSeconds = int(constants.DefaultRequestTimeout / time.Second)
	}

	if strings.TrimSpace(s.UserAgent) == "" {
		s.UserAgent = constants.DefaultUserAgent
	}

	err := s.Yahoo.valid()
	if err != nil {
		return err
	}

	if len(s.Proxies) == 0 {
		for _, endpoint := range proxies.Defaults {
			s.Proxies = append(s.Proxies, Proxy{Name: endpoint.Name, Base: endpoint.Base, Unwrap: endpoint.Unwrap.String()})
		}
	}

	_, err = s.Endpoints()
	if err != nil {
		return err
	}

	s.Log.valid()

	return s.Nsq.valid()
}

func (s *Yahoo) valid() error {
	if strings.TrimSpace(s.ChartURL) == "" {
		s.ChartURL = defaultChartURL
	}

	if !strings.HasSuffix(s.ChartURL, "/") {
		s.ChartURL += "/"
	}

	if strings.TrimSpace(s.SearchURL) == "" {
		s.SearchURL = defaultSearchURL
	}

	if s.Interval == "" {
		s.Interval = defaultInterval
	}

	if s.Range == "" {
		s.Range = defaultRange
	}

	if s.QuotesCount < 0 {
		return errors.New("yahoo.quotes_count must not be negative")
	}

	if s.QuotesCount == 0 {
		s.QuotesCount = defaultQuotesCount
	}

	return nil
}

func (s *Log) valid() {
	if s.Level == "" {
		s.Level = defaultLogLevel
	}

	if s.MaxSize <= 0 {
		s.MaxSize = defaultLogMaxSize
	}

	if s.MaxBackups <= 0 {
		s.MaxBackups = defaultLogMaxBackups
	}

	if s.MaxAge <= 0 {
		s.MaxAge = defaultLogMaxAge
	}
}

func (s Nsq) valid() error {
	if !s.Enabled {
		return nil
	}

	if strings.TrimSpace(s.Broker) == "" {
		return errors.New("nsq.broker undefined")
	}

	if strings.TrimSpace(s.Topic) == "" {
		return errors.New("nsq.topic undefined")
	}

	if (s.TLSCert == "") != (s.TLSKey == "") {
		return errors.New("nsq.tls_cert and nsq.tls_key must be set together")
	}

	for _, path := range []string{s.TLSCert, s.TLSKey} {
		if path == "" {
			continue
		}

		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			return fmt.Errorf("nsq tls file %s not exist", path)
		}
	}

	return nil
}

// RefreshInterval live update interval
func (s Config) RefreshInterval() time.Duration {
	return time.Duration(s.RefreshSeconds) * time.Second
}

// RequestTimeout per relay request timeout
func (s Config) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// Endpoints relay endpoints in try order
func (s Config) Endpoints() ([]proxies.Endpoint, error) {
	endpoints := make([]proxies.Endpoint, 0, len(s.Proxies))
	for index, proxy := range s.Proxies {
		unwrap, err := proxies.ParseUnwrap(proxy.Unwrap)
		if err != nil {
			return nil, fmt.Errorf("proxies[%d]: %w", index, err)
		}

		name := proxy.Name
		if name == "" {
			name = proxy.Base
			if name == "" {
				name = "direct"
			}
		}

		endpoints = append(endpoints, proxies.Endpoint{Name: name, Base: strings.TrimSpace(proxy.Base), Unwrap: unwrap})
	}

	return endpoints, nil
}

// Default config used without a config file
func Default() *Config {
	config := new(Config)
	// defaults always validate
	_ = config.Valid()

	return config
}

// Parse parse config from file
func Parse(filePath string) (*Config, error) {
	config := new(Config)
	_, err := toml.DecodeFile(filePath, config)
	if err != nil {
		return nil, err
	}

	err = config.Valid()
	if err != nil {
		return nil, err
	}

	return config, nil
}
