// Package manifest loads batch manifests from YAML files and turns
// them into Interface5 requests.
//
// A manifest describes one batch: the operation name and the documents
// it carries. Header fields are a flat map, item fields are grouped by
// item index, and file attachments reference files on disk or carry
// their payload inline:
//
//	operation: newInterfaceRequest
//	documents:
//	  - name: invoice
//	    headers:
//	      InvoiceNumber: "3309979202"
//	    items:
//	      - index: 1
//	        fields:
//	          Amount: "546"
//	    files:
//	      - name: newStatus.csv
//	        path: attachments/status.csv
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/CondeSun/i5Req/pkg/request"
)

// Manifest is the top-level structure of a batch manifest file.
type Manifest struct {
	Operation string     `yaml:"operation"`
	Documents []Document `yaml:"documents"`
}

// Document describes one document within a batch.
type Document struct {
	Name    string            `yaml:"name"`
	Headers map[string]string `yaml:"headers"`
	Items   []Item            `yaml:"items"`
	Files   []File            `yaml:"files"`
}

// Item groups the fields that belong to one item index.
type Item struct {
	Index  int               `yaml:"index"`
	Fields map[string]string `yaml:"fields"`
}

// File describes one attachment. Exactly one of Path and Content must
// be set: Path is resolved relative to the manifest directory, Content
// carries the payload inline.
type File struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Operation == "" {
		return fmt.Errorf("operation is required")
	}
	if len(m.Documents) == 0 {
		return fmt.Errorf("at least one document is required")
	}
	for i, doc := range m.Documents {
		if doc.Name == "" {
			return fmt.Errorf("documents[%d]: name is required", i)
		}
		for j, f := range doc.Files {
			if f.Name == "" {
				return fmt.Errorf("documents[%d].files[%d]: name is required", i, j)
			}
			if f.Path == "" && f.Content == "" {
				return fmt.Errorf("documents[%d].files[%d]: either path or content is required", i, j)
			}
			if f.Path != "" && f.Content != "" {
				return fmt.Errorf("documents[%d].files[%d]: path and content are mutually exclusive", i, j)
			}
		}
	}
	return nil
}

// BuildRequest converts the manifest into a request, reading file
// attachments referenced by path relative to baseDir. Map-valued
// fields are applied in sorted key order so the wire output is
// deterministic across runs.
func (m *Manifest) BuildRequest(baseDir string) (*request.Request, error) {
	req := request.New(m.Operation)

	for _, mdoc := range m.Documents {
		id := req.AddDocument(mdoc.Name)
		doc, err := req.Document(id)
		if err != nil {
			return nil, err
		}

		for _, name := range sortedKeys(mdoc.Headers) {
			doc.AddHeaderField(name, mdoc.Headers[name])
		}
		for _, item := range mdoc.Items {
			for _, name := range sortedKeys(item.Fields) {
				doc.AddItemField(name, item.Fields[name], item.Index)
			}
		}

		for _, f := range mdoc.Files {
			payload := []byte(f.Content)
			if f.Path != "" {
				path := f.Path
				if !filepath.IsAbs(path) {
					path = filepath.Join(baseDir, path)
				}
				payload, err = os.ReadFile(path)
				if err != nil {
					return nil, fmt.Errorf("reading attachment %s: %w", f.Name, err)
				}
			}
			doc.AddBytesFile(f.Name, payload)
		}
	}

	return req, nil
}

const defaultManifestTemplate = `# Interface5 batch manifest
operation: newInterfaceRequest
documents:
  - name: invoice
    headers:
      InvoiceNumber: "3309979202"
    items:
      - index: 1
        fields:
          Amount: "546"
    files:
      - name: newStatus.csv
        content: "id;status\n1;new\n"
`

// Init writes a starter manifest file. It refuses to overwrite an
// existing file unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("manifest file %s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(defaultManifestTemplate), 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
