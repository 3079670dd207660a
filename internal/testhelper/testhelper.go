// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper provides shared helpers for package tests.
package testhelper

import (
	"fmt"
	"net/http"
	"os"
	"testing"
)

// MockRoundTripper replaces the transport of an HTTP client in tests.
type MockRoundTripper struct {
	Fn func(*http.Request) (*http.Response, error)
}

func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// FileResponder returns a round trip function that answers every request with the
// given status code and the content of file as body. Each call opens file anew, so the
// responder can serve any number of requests. A missing file fails the round trip.
func FileResponder(t *testing.T, status int, file string) func(*http.Request) (*http.Response, error) {
	t.Helper()
	return func(*http.Request) (*http.Response, error) {
		data, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open JSON response file: %w", err)
		}
		return &http.Response{
			StatusCode: status,
			Body:       data,
			Header:     make(http.Header),
		}, nil
	}
}
