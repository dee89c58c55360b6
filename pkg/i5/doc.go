// Copyright (c) 2025 CondeSun
// SPDX-License-Identifier: BSD-2-Clause

/*
Package i5 provides the main client API for Interface5 submissions.

# Quick Start

To submit a batch request:

	import (
	    "github.com/CondeSun/i5Req/pkg/i5"
	    "github.com/CondeSun/i5Req/pkg/request"
	)

	req := request.New("newInterfaceRequest")
	doc, _ := req.Document(req.AddDocument("invoice"))
	doc.AddHeaderField("InvoiceNumber", "3309979202").
	    AddItemField("Amount", "546", 1).
	    AddBytesFile("newStatus.csv", csvBytes)

	validated, err := req.Validate()
	if err != nil {
	    // handle validation failure
	}

	client, _ := i5.NewClient(nil)
	endpoint := i5.NewEndpoint("localhost", 43001, "Processor", "Default")

	receipt, err := client.Submit(ctx, validated, endpoint)

# Asynchronous Submission

SubmitAsync returns immediately with a submission id; the POST runs in the
background and the outcome is kept by a submission tracker:

	id, _ := client.SubmitAsync(ctx, validated, endpoint)

	sub, err := client.Wait(ctx, id)
	if sub.State == reliability.StateFailed {
	    // sub.Err holds the delivery error
	}

There is no retry logic in either mode; errors are reported once and the
decision to resubmit stays with the caller.

# Metrics

Pass a prometheus.Registerer in ClientConfig to export submission counters:

	client, _ := i5.NewClient(&i5.ClientConfig{
	    Registerer: prometheus.DefaultRegisterer,
	})
*/
package i5
