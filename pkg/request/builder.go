package request

import (
	"encoding/json"
	"fmt"
)

// Request is an Interface5 batch request under construction. Documents are
// stored in an append-only sequence; AddDocument hands out positional ids
// that stay valid for the lifetime of the request.
type Request struct {
	name      string
	documents []*Document
}

// Option is a functional option for New.
type Option func(*Request)

// WithDocument appends a document and lets build populate it.
func WithDocument(name string, build func(*Document)) Option {
	return func(r *Request) {
		id := r.AddDocument(name)
		if build != nil {
			build(r.documents[id])
		}
	}
}

// New creates a new request for the given operation name.
func New(name string, opts ...Option) *Request {
	r := &Request{
		name:      name,
		documents: make([]*Document, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Name returns the operation name.
func (r *Request) Name() string {
	return r.name
}

// AddDocument appends a new document and returns its id, the position in
// the request's document sequence.
func (r *Request) AddDocument(name string) int {
	r.documents = append(r.documents, &Document{name: name})
	return len(r.documents) - 1
}

// Document returns the document with the given id for further mutation.
func (r *Request) Document(id int) (*Document, error) {
	if id < 0 || id >= len(r.documents) {
		return nil, fmt.Errorf("document %d: %w", id, ErrDocumentNotFound)
	}
	return r.documents[id], nil
}

// DocumentCount reports how many documents the request holds.
func (r *Request) DocumentCount() int {
	return len(r.documents)
}

// wireRequest is the top-level JSON shape posted to the endpoint.
type wireRequest struct {
	Name      string      `json:"Name"`
	Documents []*Document `json:"Documents"`
}

// MarshalJSON serializes the request in the WebServiceInput wire format.
func (r *Request) MarshalJSON() ([]byte, error) {
	docs := r.documents
	if docs == nil {
		docs = []*Document{}
	}
	return json.Marshal(wireRequest{
		Name:      r.name,
		Documents: docs,
	})
}
