package connection

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is the JSON object returned by the API, as parsed.
type Response map[string]interface{}

// Decode decodes the response into v, which is usually one of the api/v1 models.
func (r Response) Decode(v interface{}) error {
	b, err := json.Marshal(r)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(json.Unmarshal(b, v))
}

func parseResponse(body []byte) (Response, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	var data Response
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return data, nil
}
