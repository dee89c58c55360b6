// Copyright (c) 2025 CondeSun
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport implements the HTTPS transport for Interface5.

This package provides the HTTP POST boundary of the library with
TLS 1.2/1.3 support. It carries no retry or recovery logic; errors are
returned to the caller.

# TLS Configuration

The package recommends TLS 1.3 with fallback to TLS 1.2:

	config := transport.DefaultHTTPSConfig()
	// MinTLSVersion: TLS 1.2
	// MaxTLSVersion: TLS 1.3

For TLS 1.2, the following cipher suites are recommended:
  - TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384
  - TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256
  - TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384
  - TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256

# Client Usage

Create a client and post a serialized request body:

	client := transport.NewHTTPSClient(&transport.HTTPSConfig{
	    MinTLSVersion: transport.TLS12,
	    RootCAs:       certPool,
	})

	resp, err := client.Post(ctx, endpointURL, body)

A non-2xx answer is reported as a *StatusError carrying the status code
and the response body.

# Content Type

The Interface5 request body is JSON:

	ContentTypeJSON = "application/json"
*/
package transport
