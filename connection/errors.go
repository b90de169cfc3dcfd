package connection

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/pkg/errors"
)

var (
	accessDeniedRegExp  = regexp.MustCompile(`Access [dD]enied`)
	forbiddenRegExp     = regexp.MustCompile(`Forbidden: `)
	badRequestRegExp    = regexp.MustCompile(`Bad Request:`)
	unprocessableRegExp = regexp.MustCompile(`Unprocess[ia]ble Entity: `)
)

// StatusError is implemented by every error the API responded with.
type StatusError interface {
	error
	StatusCode() int
}

type apiError struct {
	code    int
	message string
}

func (e apiError) StatusCode() int {
	return e.code
}

func (e apiError) Message() string {
	return e.message
}

type AccessDeniedError struct{ apiError }

func (e *AccessDeniedError) Error() string { return e.message }

type ActionForbiddenError struct{ apiError }

func (e *ActionForbiddenError) Error() string { return e.message }

type BadRequestError struct{ apiError }

func (e *BadRequestError) Error() string { return e.message }

type UnprocessableEntityError struct{ apiError }

func (e *UnprocessableEntityError) Error() string { return e.message }

// InvalidDataError is returned for a 4xx or 5xx response that carries no known error message.
type InvalidDataError struct {
	apiError
	Data Response
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("Status: %d, Message: %s", e.code, e.message)
}

// InvalidResponseError is returned when the response body is not a JSON object.
type InvalidResponseError struct {
	apiError
	body  string
	cause error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("Invalid response from Site Factory API (status %d): %s", e.code, e.body)
}

// Body returns the raw response body.
func (e *InvalidResponseError) Body() []byte { return []byte(e.body) }

// Decode decodes the raw body into v. It fails when the body is not valid JSON.
func (e *InvalidResponseError) Decode(v interface{}) error {
	return errors.WithStack(json.Unmarshal([]byte(e.body), v))
}

func (e *InvalidResponseError) Cause() error  { return e.cause }
func (e *InvalidResponseError) Unwrap() error { return e.cause }

func IsAccessDenied(err error) bool {
	var target *AccessDeniedError
	return errors.As(err, &target)
}

// StatusCode returns the HTTP status of an API error, or 0 if err did not come from a response.
func StatusCode(err error) int {
	var target StatusError
	if errors.As(err, &target) {
		return target.StatusCode()
	}
	return 0
}

func accessCheck(code int, body []byte) (Response, error) {
	data, err := parseResponse(body)
	if err != nil {
		return nil, &InvalidResponseError{apiError: apiError{code: code}, body: string(body), cause: err}
	}

	message, _ := data["message"].(string)
	switch {
	case message == "":
	case accessDeniedRegExp.MatchString(message):
		return nil, &AccessDeniedError{apiError{code: code, message: message}}
	case forbiddenRegExp.MatchString(message):
		return nil, &ActionForbiddenError{apiError{code: code, message: message}}
	case badRequestRegExp.MatchString(message):
		return nil, &BadRequestError{apiError{code: code, message: message}}
	case unprocessableRegExp.MatchString(message):
		return nil, &UnprocessableEntityError{apiError{code: code, message: message}}
	}

	if code >= http.StatusBadRequest {
		if message == "" {
			message = http.StatusText(code)
		}
		return nil, &InvalidDataError{apiError: apiError{code: code, message: message}, Data: data}
	}

	return data, nil
}
