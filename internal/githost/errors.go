// Copyright 2026 The Repolens Authors
// SPDX-License-Identifier: MIT

package githost

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v68/github"
)

// Kind classifies a host error so callers can branch on the failure class
// without string matching.
type Kind int

const (
	// KindTransport covers network-level failures before an HTTP status
	// was received.
	KindTransport Kind = iota
	// KindAuth covers invalid credentials (401) and permission denials
	// (403 without a rate-limit indicator).
	KindAuth
	// KindRateLimit covers primary and secondary rate limiting.
	KindRateLimit
	// KindNotFound covers missing repositories, branches, and paths (404).
	KindNotFound
	// KindInvalidRef covers references the host refuses to process (422).
	KindInvalidRef
	// KindAPI covers every other non-success status.
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindNotFound:
		return "not_found"
	case KindInvalidRef:
		return "invalid_ref"
	default:
		return "api"
	}
}

// Error is the typed failure returned by every Client operation. It names
// the resource being fetched and the repository ref so the message is
// actionable without further wrapping.
type Error struct {
	Kind       Kind
	Resource   string // "repository metadata", "contributors", ...
	Ref        Ref
	StatusCode int
	Message    string // upstream message, if any
	Hint       string // remediation suggestion, if any
	cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("fetching %s for %s: %s", e.Resource, e.Ref, e.reason())
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) reason() string {
	switch e.Kind {
	case KindAuth:
		if e.StatusCode == http.StatusUnauthorized {
			return "invalid credentials"
		}
		return "permission denied"
	case KindRateLimit:
		return "rate limited"
	case KindNotFound:
		return "not found"
	case KindInvalidRef:
		return "reference rejected"
	case KindTransport:
		if e.cause != nil {
			return e.cause.Error()
		}
		return "transport failure"
	default:
		if e.Message != "" {
			return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
		}
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
}

// IsKind reports whether err is a host Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var he *Error
	return errors.As(err, &he) && he.Kind == kind
}

// IsRateLimit reports whether err is a rate-limit failure.
func IsRateLimit(err error) bool { return IsKind(err, KindRateLimit) }

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsAuth reports whether err is a credential or permission failure.
func IsAuth(err error) bool { return IsKind(err, KindAuth) }

// classify converts a go-github error into a typed *Error. Context errors
// pass through untouched so cancellation checks keep working upstream.
func (c *Client) classify(resource string, ref Ref, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	base := &Error{Resource: resource, Ref: ref, cause: err}

	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		base.Kind = KindRateLimit
		base.StatusCode = http.StatusForbidden
		base.Message = rle.Message
		base.Hint = c.rateLimitHint()
		return base
	}
	var arle *github.AbuseRateLimitError
	if errors.As(err, &arle) {
		base.Kind = KindRateLimit
		base.StatusCode = http.StatusForbidden
		base.Message = arle.Message
		if arle.RetryAfter != nil {
			base.Hint = fmt.Sprintf("retry after %s", arle.RetryAfter.Round(time.Second))
		} else {
			base.Hint = c.rateLimitHint()
		}
		return base
	}

	var ger *github.ErrorResponse
	if errors.As(err, &ger) {
		base.Message = ger.Message
		if ger.Response != nil {
			base.StatusCode = ger.Response.StatusCode
		}
		switch base.StatusCode {
		case http.StatusUnauthorized:
			base.Kind = KindAuth
			base.Hint = "check that the access token is valid"
		case http.StatusForbidden:
			// A 403 with an exhausted quota header is rate limiting even
			// when go-github did not surface a RateLimitError.
			if ger.Response != nil && ger.Response.Header.Get("X-Ratelimit-Remaining") == "0" {
				base.Kind = KindRateLimit
				base.Hint = c.rateLimitHint()
			} else {
				base.Kind = KindAuth
				base.Hint = "the token lacks access to this repository"
			}
		case http.StatusNotFound:
			base.Kind = KindNotFound
			base.Hint = "check the owner/name spelling; private repositories require a token"
		case http.StatusUnprocessableEntity:
			base.Kind = KindInvalidRef
		default:
			base.Kind = KindAPI
		}
		return base
	}

	base.Kind = KindTransport
	return base
}

func (c *Client) rateLimitHint() string {
	if c.authenticated {
		return "wait for the rate limit window to reset before retrying"
	}
	return "configure a GitHub token to raise the rate limit from 60 to 5,000 requests/hour"
}
