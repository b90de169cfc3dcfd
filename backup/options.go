package backup

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"

	v1 "github.com/ibm/sfrest/api/v1"
)

// DefaultURLLifetime is the validity, in seconds, of a backup download URL when none is requested.
const DefaultURLLifetime = 60

type Param struct {
	Key   string
	Value interface{}
}

// Params are URL query parameters. They are encoded in the order given. Values are
// converted with fmt.Sprint and a nil value is written as a bare key.
type Params []Param

func (p Params) Encode() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		if param.Value == nil {
			continue
		}
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fmt.Sprint(param.Value)))
	}
	return b.String()
}

// ListOptions are the paging options of the backup listing.
type ListOptions struct {
	Page  int    `url:"page,omitempty"`
	Limit int    `url:"limit,omitempty"`
	Order string `url:"order,omitempty"`
}

// Params converts the options, sorted by key. Unset fields are left out.
func (o ListOptions) Params() (Params, error) {
	values, err := query.Values(o)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	params := Params{}
	for _, key := range keys {
		for _, value := range values[key] {
			params = append(params, Param{Key: key, Value: value})
		}
	}
	return params, nil
}

type URLOptions struct {
	// Lifetime of the URL in seconds, DefaultURLLifetime when nil. Set it with proto.Int32.
	Lifetime *int32
}

func (o URLOptions) Params() Params {
	lifetime := int32(DefaultURLLifetime)
	if o.Lifetime != nil {
		lifetime = *o.Lifetime
	}
	return Params{{Key: "lifetime", Value: lifetime}}
}

// CreateOptions are sent as the body of a backup creation. Fields left empty are not sent.
type CreateOptions struct {
	Label          string               `json:"label,omitempty"`
	CallbackData   string               `json:"callback_data,omitempty"`
	CallbackURL    string               `json:"callback_url,omitempty"`
	CallbackMethod string               `json:"callback_method,omitempty"`
	Components     []v1.BackupComponent `json:"components,omitempty"`
}

type expirationRequest struct {
	ExpirationDays int `json:"expiration_days"`
}
