// Copyright (c) 2025 CondeSun
// SPDX-License-Identifier: BSD-2-Clause

/*
Package request provides the Interface5 batch request model and builder.

A request carries an operation name and an ordered sequence of documents.
Each document owns header fields, item fields grouped by a numeric item
index, and base64-encoded file attachments.

# Building a Request

	req := request.New("newInterfaceRequest")
	id := req.AddDocument("invoice")

	doc, _ := req.Document(id)
	doc.AddHeaderField("InvoiceNumber", "3309979202").
	    AddItemField("Amount", "546", 1).
	    AddBytesFile("newStatus.csv", csvBytes)

Setting a field or file under an existing key overwrites the previous
value; the three namespaces are independent.

# Validation

Validate checks the structural requirements of the WebServiceInput
endpoint and returns a ValidatedRequest, the only type the transport
accepts:

	validated, err := req.Validate()
	if err != nil {
	    var verr *request.ValidationError
	    if errors.As(err, &verr) {
	        // verr.Problems lists every failed check
	    }
	}

# Wire Format

ValidatedRequest.Body produces the JSON body posted to the endpoint:

	{"Name":"...","Documents":[{"Name":"...","Fields":[...],"Files":[...]}]}

Header fields serialize with ItemNo 0 ahead of item fields, which are
grouped by ascending item index.
*/
package request
