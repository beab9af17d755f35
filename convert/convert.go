// Package convert adapts errors from the standard library and common
// dependencies into *error.Error.
//
// Every adaptor is total and stateless: code 500, the source error's text
// as the message, no field detail and no native payload, unless documented
// otherwise. The source error is kept as the cause for errors.Is / errors.As.
package convert

import (
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"

	apiError "github.com/next-trace/teo-error/error"
)

// multipartPrefix is prepended to multipart parse errors.
const multipartPrefix = "multipart/form-data error: "

func from(err error) *apiError.Error {
	if err == nil {
		return nil
	}
	return apiError.E(err.Error(), apiError.WithCause(err))
}

// FromIO adapts an I/O error (os, io, io/fs).
func FromIO(err error) *apiError.Error { return from(err) }

// FromUUID adapts a UUID parse error.
func FromUUID(err error) *apiError.Error { return from(err) }

// FromCookie adapts a cookie parse error.
func FromCookie(err error) *apiError.Error { return from(err) }

// FromURI adapts a URI parse error.
func FromURI(err error) *apiError.Error { return from(err) }

// FromMultipart adapts a multipart/form-data parse error. It is a client
// error: code 400.
func FromMultipart(err error) *apiError.Error {
	if err == nil {
		return nil
	}
	return apiError.E(multipartPrefix+err.Error(),
		apiError.WithStatus(http.StatusBadRequest),
		apiError.WithCause(err),
	)
}

// ParseUUID parses s, adapting any failure with FromUUID.
func ParseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, FromUUID(err)
	}
	return id, nil
}

// ParseCookie parses a Cookie header line, adapting any failure with
// FromCookie.
func ParseCookie(line string) ([]*http.Cookie, error) {
	cookies, err := http.ParseCookie(line)
	if err != nil {
		return nil, FromCookie(err)
	}
	return cookies, nil
}

// ParseURI parses s, adapting any failure with FromURI.
func ParseURI(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, FromURI(err)
	}
	return u, nil
}

// ValidateHeaderName reports whether name is a valid HTTP header field name.
func ValidateHeaderName(name string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return apiError.New("Invalid header name")
	}
	return nil
}

// ValidateHeaderValue reports whether value is a valid HTTP header field
// value.
func ValidateHeaderValue(value string) error {
	if !httpguts.ValidHeaderFieldValue(value) {
		return apiError.New("Invalid header value")
	}
	return nil
}

// HeaderString returns the first value of key in h as text. A value holding
// anything other than visible ASCII, space or tab is rejected even when it
// is a legal header value, since obs-text has no defined charset.
func HeaderString(h http.Header, key string) (string, error) {
	v := h.Get(key)
	for i := 0; i < len(v); i++ {
		if c := v[i]; (c < 0x20 && c != '\t') || c >= 0x7f {
			return "", apiError.New("Failed to parse header value")
		}
	}
	return v, nil
}

// ReadForm reads a whole multipart form, adapting any failure with
// FromMultipart.
func ReadForm(r *multipart.Reader, maxMemory int64) (*multipart.Form, error) {
	form, err := r.ReadForm(maxMemory)
	if err != nil {
		return nil, FromMultipart(err)
	}
	return form, nil
}
