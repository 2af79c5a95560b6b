// Package contentapi reads JSON documents from the content endpoint.
//
// Resource paths are resolved against a base URL and always sent with a
// trailing slash, which the content backend requires.
package contentapi
