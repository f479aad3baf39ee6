// Package httputil provides HTTP helpers used when fetching remote package
// indexes.
//
// # Retry
//
// [Retry] wraps a request with automatic retry for transient failures. The
// index download uses three attempts starting one second apart:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    return httputil.CheckStatus(resp.StatusCode)
//	})
//
// Only errors wrapped in [RetryableError] are retried; everything else
// (a 404, a malformed URL) fails immediately.
//
// # Status Codes
//
// [CheckStatus] maps HTTP status codes onto [ErrNotFound] and [ErrNetwork],
// marking 5xx responses retryable.
package httputil
