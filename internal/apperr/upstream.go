package apperr

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
)

// Kind classifies a search engine failure. It is kept for logs and metrics only,
// clients always receive the same generic 500 response.
type Kind string

const (
	KindTimeout        Kind = "timeout"
	KindConnection     Kind = "connection"
	KindMalformedQuery Kind = "malformed_query"
	KindNotFound       Kind = "not_found"
	KindUnknown        Kind = "unknown"
)

// UpstreamError wraps any failure returned by the search engine
type UpstreamError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *UpstreamError) Error() string {
	msg := "engine " + e.Op + " failed (" + string(e.Kind) + ")"
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstream wraps err for operation op. A nil err yields nil.
func NewUpstream(op string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{Op: op, Kind: kind, Err: err}
}

// Upstream wraps err using the transport level classification
func Upstream(op string, err error) error {
	return NewUpstream(op, ClassifyTransport(err), err)
}

// ClassifyTransport detects timeouts and connection failures common to every engine client.
// Anything it cannot recognise is KindUnknown.
func ClassifyTransport(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return KindConnection
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnection
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindConnection
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindConnection
	}

	return KindUnknown
}

// KindOf returns the kind of the first UpstreamError in err's chain
func KindOf(err error) (Kind, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind, true
	}
	return "", false
}
