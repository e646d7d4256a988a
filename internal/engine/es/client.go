package es

import (
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// DefaultSearchFields are matched by free text queries, title weighted higher
var DefaultSearchFields = []string{"title^2", "content", "description"}

type ClientConfig struct {
	Addresses    []string
	IndexName    string
	Username     string
	Password     string
	SearchFields []string
	// RequestTimeout bounds a single engine call; zero disables the bound
	RequestTimeout time.Duration
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	if config.RequestTimeout > 0 {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.ResponseHeaderTimeout = config.RequestTimeout
		cfg.Transport = t
	}

	return elasticsearch.NewTypedClient(cfg)
}
