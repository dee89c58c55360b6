package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrDocumentNotFound is returned when a document id does not index into
// the request's document sequence.
var ErrDocumentNotFound = errors.New("document not found")

// ValidationError reports every structural problem found in a request.
// Validation is all-or-nothing: a request either passes every check or the
// error enumerates all failures.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request not valid: %s", strings.Join(e.Problems, "; "))
}

// Validate applies the structural checks required by the WebServiceInput
// contract and returns a ValidatedRequest ready for submission.
func (r *Request) Validate() (*ValidatedRequest, error) {
	var problems []string

	if r.name == "" {
		problems = append(problems, "operation name is empty")
	}
	if len(r.documents) == 0 {
		problems = append(problems, "request has no documents")
	}

	for id, doc := range r.documents {
		if len(doc.fields) == 0 && len(doc.files) == 0 {
			problems = append(problems, fmt.Sprintf("document %d has neither fields nor files", id))
		}
		for _, f := range doc.fields {
			if f.Name == "" {
				problems = append(problems, fmt.Sprintf("document %d has a field with an empty name", id))
			}
			if f.ItemNo < 0 {
				problems = append(problems, fmt.Sprintf("document %d field %q has a negative item index", id, f.Name))
			}
		}
		for _, f := range doc.files {
			if f.Name == "" {
				problems = append(problems, fmt.Sprintf("document %d has a file with an empty name", id))
			}
		}
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	return &ValidatedRequest{req: r}, nil
}

// ValidatedRequest is a request that passed Validate. The transport layer
// only accepts this type, so a structurally invalid request can never reach
// the wire.
type ValidatedRequest struct {
	req *Request
}

// Name returns the operation name.
func (v *ValidatedRequest) Name() string {
	return v.req.name
}

// DocumentCount reports how many documents the request holds.
func (v *ValidatedRequest) DocumentCount() int {
	return v.req.DocumentCount()
}

// Document returns read access to the document with the given id.
func (v *ValidatedRequest) Document(id int) (*Document, error) {
	return v.req.Document(id)
}

// Body serializes the request into the JSON wire format.
func (v *ValidatedRequest) Body() ([]byte, error) {
	data, err := json.Marshal(v.req)
	if err != nil {
		return nil, fmt.Errorf("serializing request: %w", err)
	}
	return data, nil
}
