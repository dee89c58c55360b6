// Package request provides Interface5 batch request structures and builders.
package request

import (
	"encoding/base64"
	"encoding/json"
	"sort"
)

// Field is a single named value on a document. Header fields carry
// ItemNo 0; line-item fields carry the 1-based item index they belong to.
type Field struct {
	Name   string `json:"Name"`
	Value  string `json:"Value"`
	ItemNo int    `json:"ItemNo"`
}

// File is an attached payload. Data holds the standard base64 encoding of
// the raw bytes. Key is reserved by the WebServiceInput contract and is
// always serialized, null when unset.
type File struct {
	Name string  `json:"Name"`
	Key  *string `json:"Key"`
	Data string  `json:"Data"`
}

// Document is one unit within a request. It owns three namespaces: header
// fields (keyed by name), item fields (keyed by name and item index) and
// file attachments (keyed by filename). Writing to an existing key
// overwrites the value in place, keeping the original insertion order.
type Document struct {
	name   string
	fields []Field
	files  []File
}

// Name returns the document name.
func (d *Document) Name() string {
	return d.name
}

// AddHeaderField sets a header field on the document.
func (d *Document) AddHeaderField(name, value string) *Document {
	return d.AddItemField(name, value, 0)
}

// AddItemField sets a field on the document for the given item index.
// Index 0 addresses the header namespace.
func (d *Document) AddItemField(name, value string, itemNo int) *Document {
	for i := range d.fields {
		if d.fields[i].Name == name && d.fields[i].ItemNo == itemNo {
			d.fields[i].Value = value
			return d
		}
	}
	d.fields = append(d.fields, Field{Name: name, Value: value, ItemNo: itemNo})
	return d
}

// AddBytesFile attaches raw bytes under the given filename. The payload is
// base64 encoded for the wire.
func (d *Document) AddBytesFile(name string, data []byte) *Document {
	return d.AddBase64File(name, base64.StdEncoding.EncodeToString(data))
}

// AddBase64File attaches a payload that is already base64 encoded.
func (d *Document) AddBase64File(name, data string) *Document {
	for i := range d.files {
		if d.files[i].Name == name {
			d.files[i].Data = data
			return d
		}
	}
	d.files = append(d.files, File{Name: name, Data: data})
	return d
}

// HeaderField returns the value of a header field.
func (d *Document) HeaderField(name string) (string, bool) {
	return d.ItemField(name, 0)
}

// ItemField returns the value of a field at the given item index.
func (d *Document) ItemField(name string, itemNo int) (string, bool) {
	for i := range d.fields {
		if d.fields[i].Name == name && d.fields[i].ItemNo == itemNo {
			return d.fields[i].Value, true
		}
	}
	return "", false
}

// FileData returns the decoded bytes of an attached file.
func (d *Document) FileData(name string) ([]byte, bool) {
	for i := range d.files {
		if d.files[i].Name == name {
			data, err := base64.StdEncoding.DecodeString(d.files[i].Data)
			if err != nil {
				return nil, false
			}
			return data, true
		}
	}
	return nil, false
}

// Fields returns a copy of the document's fields in wire order.
func (d *Document) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	sortFields(out)
	return out
}

// Files returns a copy of the attached files in insertion order.
func (d *Document) Files() []File {
	out := make([]File, len(d.files))
	copy(out, d.files)
	return out
}

// sortFields orders fields for the wire: header fields first, then item
// fields grouped by ascending item index, insertion order within a group.
func sortFields(fields []Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].ItemNo < fields[j].ItemNo
	})
}

// wireDocument is the JSON shape expected by the WebServiceInput endpoint.
type wireDocument struct {
	Name   string  `json:"Name"`
	Fields []Field `json:"Fields"`
	Files  []File  `json:"Files"`
}

// MarshalJSON serializes the document in wire order.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireDocument{
		Name:   d.name,
		Fields: d.Fields(),
		Files:  d.Files(),
	})
}
