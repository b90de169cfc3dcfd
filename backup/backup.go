package backup

import (
	"context"
	"net/url"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/ibm/sfrest/connection"
)

const (
	sitesPath      = "/api/v1/sites"
	expirationPath = "/api/v1/backup-expiration/"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client builds the backup requests of the Site Factory API. Errors of the underlying
// connection are returned as is.
type Client struct {
	conn connection.Doer
}

func NewClient(conn connection.Doer) *Client {
	return &Client{conn: conn}
}

func backupsPath(nid string) string {
	return sitesPath + "/" + url.PathEscape(nid) + "/backups"
}

func backupPath(nid, bid string) string {
	return backupsPath(nid) + "/" + url.PathEscape(bid)
}

func withQuery(path string, params Params) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// GetBackups lists the backups of site nid.
func (c *Client) GetBackups(ctx context.Context, nid string, params Params) (connection.Response, error) {
	return c.conn.Get(ctx, withQuery(backupsPath(nid), params))
}

func (c *Client) ListBackups(ctx context.Context, nid string, opts ListOptions) (connection.Response, error) {
	params, err := opts.Params()
	if err != nil {
		return nil, err
	}
	return c.GetBackups(ctx, nid, params)
}

// BackupURL requests a temporary download URL for backup bid of site nid.
func (c *Client) BackupURL(ctx context.Context, nid, bid string, opts URLOptions) (connection.Response, error) {
	return c.conn.Get(ctx, withQuery(backupPath(nid, bid)+"/url", opts.Params()))
}

func (c *Client) DeleteBackup(ctx context.Context, nid, bid string) (connection.Response, error) {
	return c.conn.Delete(ctx, backupPath(nid, bid))
}

// CreateBackup starts a backup of site nid. With zero options the body is an empty object.
func (c *Client) CreateBackup(ctx context.Context, nid string, opts CreateOptions) (connection.Response, error) {
	body, err := json.Marshal(opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return c.conn.Post(ctx, sitesPath+"/"+url.PathEscape(nid)+"/backup", body)
}

// ExpirationSet sets the number of days after which backups are deleted.
func (c *Client) ExpirationSet(ctx context.Context, days int) (connection.Response, error) {
	body, err := json.Marshal(expirationRequest{ExpirationDays: days})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return c.conn.Put(ctx, expirationPath, body)
}

func (c *Client) ExpirationGet(ctx context.Context) (connection.Response, error) {
	return c.conn.Get(ctx, expirationPath)
}
