package client

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ibm/sfrest/backup"
	"github.com/ibm/sfrest/config"
	"github.com/ibm/sfrest/connection"
)

// Client is the entry point of the Site Factory API. Its sub-clients share one connection.
type Client struct {
	backup *backup.Client
}

func New(cfg config.Config, httpClient *http.Client, logr *zap.SugaredLogger) (*Client, error) {
	conn, err := connection.New(connection.Config{
		URL:     cfg.URL,
		User:    cfg.User,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	}, httpClient, logr)
	if err != nil {
		return nil, err
	}
	return NewWithDoer(conn), nil
}

func NewWithDoer(conn connection.Doer) *Client {
	return &Client{
		backup: backup.NewClient(conn),
	}
}

func (c *Client) Backup() *backup.Client {
	return c.backup
}
