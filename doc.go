// Copyright (c) 2025 CondeSun
// SPDX-License-Identifier: BSD-2-Clause

/*
Package i5req implements a client library for the Interface5 webservice
input channel, used to deliver document batches to Interface5-based
backends.

# Overview

i5Req builds, validates, and submits Interface5 batch requests. A batch
carries one or more named documents, each made of header fields, item
fields grouped by item index, and base64-encoded file attachments. The
library serializes batches to the WebServiceInput JSON format and posts
them over HTTPS.

# Package Structure

The library is organized into the following packages:

	github.com/CondeSun/i5Req/pkg/request     - Batch request model, building, and validation
	github.com/CondeSun/i5Req/pkg/i5          - Client API: endpoints, submission, receipts
	github.com/CondeSun/i5Req/pkg/transport   - HTTPS transport with TLS 1.2/1.3
	github.com/CondeSun/i5Req/pkg/reliability - Async submission tracking

The i5submit command under cmd/i5submit submits batches described by
YAML manifests from the command line.

# Quick Start

To submit a batch:

	import (
	    "github.com/CondeSun/i5Req/pkg/i5"
	    "github.com/CondeSun/i5Req/pkg/request"
	)

	// Build the request
	req := request.New("newInterfaceRequest")
	id := req.AddDocument("invoice")
	doc, _ := req.Document(id)
	doc.AddHeaderField("InvoiceNumber", "3309979202").
	    AddItemField("Amount", "546", 1).
	    AddBytesFile("newStatus.csv", csvData)

	// Validate. All problems are reported at once.
	validated, err := req.Validate()
	if err != nil {
	    return err
	}

	// Create client and submit
	client, _ := i5.NewClient(nil)
	endpoint := i5.NewEndpoint("i5.example.com", 43001, "Processor", "Default")
	receipt, err := client.Submit(ctx, validated, endpoint)

Asynchronous submission returns a submission id immediately; the
outcome can be polled with Status or awaited with Wait. See the pkg/i5
package documentation for details.

# License

BSD-2-Clause License
*/
package i5req
