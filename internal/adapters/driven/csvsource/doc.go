// Package csvsource fetches CSV documents over HTTP.
//
// Requests share one client with a timeout and an optional token-bucket
// throttle. Responses are parsed with a header row; any non-2xx status is
// reported as a *domain.FetchError carrying the status code.
package csvsource
