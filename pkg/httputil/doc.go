// Package httputil provides HTTP helpers for fetching remote datasets.
//
// # Overview
//
//   - [Fetch]: GET a URL with retry, status classification and HTTP hooks
//   - [Retry]: Automatic retry with exponential backoff
//   - [Cache]: File-based store of last known good responses
//
// # Fetching
//
// [Fetch] treats network failures, 5xx and 429 responses as transient and
// retries them; 404 maps to NOT_FOUND and any other non-2xx status fails
// immediately:
//
//	body, err := httputil.Fetch(ctx, http.DefaultClient, url, httputil.FetchOptions{})
//
// # Caching
//
// [Cache] stores JSON values on disk with a TTL. The HTTP dataset source
// keeps the last successful body there so a dashboard can still start when
// the remote is briefly unreachable.
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	fallback := cache.Namespace("dataset:")
package httputil
