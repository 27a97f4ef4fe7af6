// Package api provides HTTP client functionality for communicating with the
// SendGrid v3 API. It handles authentication, request serialization, and the
// classification of responses into results or typed errors.
//
// # Client Creation
//
// [NewClient] takes a [Config] with the API key and base URL. The key is
// sent as a bearer token in the Authorization header on every request,
// together with Content-Type: application/json.
//
// # Transport
//
// Requests are dispatched through a [Transport], a two-method capability
// (Post, Get) returning a fully read [Response]. [HTTPTransport] is the
// net/http implementation used by default. The client performs exactly one
// exchange per call: there are no retries and no client-side timeout beyond
// what the transport is configured with.
//
// # Response Classification
//
// Every response goes through the same algorithm:
//
//   - 2xx: an empty or whitespace-only body is reported as no content;
//     otherwise the body is decoded into the caller's result. A decode
//     failure is an [apierrors.DecodeError].
//   - 400: the body is decoded as {"description": ..., "errors": [...]} and
//     returned as an [apierrors.APIError]. An undecodable body becomes an
//     [apierrors.TransportError] carrying the raw bytes.
//   - 401, 500, 503: a fixed [apierrors.APIError]; the body is not read.
//   - anything else: an [apierrors.APIError] matching ErrUnexpectedStatus,
//     carrying the raw body and a best-effort description.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
