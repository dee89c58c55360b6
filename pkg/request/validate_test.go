package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MinimalValidRequest(t *testing.T) {
	req := New("newInterfaceRequest")
	doc, _ := req.Document(req.AddDocument("invoice"))
	doc.AddHeaderField("InvoiceNumber", "3309979202")

	validated, err := req.Validate()
	require.NoError(t, err)
	require.NotNil(t, validated)
	assert.Equal(t, "newInterfaceRequest", validated.Name())
	assert.Equal(t, 1, validated.DocumentCount())
}

func TestValidate_FileOnlyDocumentIsValid(t *testing.T) {
	req := New("newInterfaceRequest")
	doc, _ := req.Document(req.AddDocument("upload"))
	doc.AddBytesFile("newStatus.csv", []byte("data"))

	_, err := req.Validate()
	assert.NoError(t, err)
}

func TestValidate_Failures(t *testing.T) {
	t.Run("empty operation name", func(t *testing.T) {
		req := New("")
		doc, _ := req.Document(req.AddDocument("invoice"))
		doc.AddHeaderField("A", "1")

		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "operation name")
	})

	t.Run("no documents", func(t *testing.T) {
		_, err := New("newInterfaceRequest").Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no documents")
	})

	t.Run("empty document", func(t *testing.T) {
		req := New("newInterfaceRequest")
		req.AddDocument("empty")

		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "neither fields nor files")
	})

	t.Run("empty field name", func(t *testing.T) {
		req := New("newInterfaceRequest")
		doc, _ := req.Document(req.AddDocument("invoice"))
		doc.AddHeaderField("", "value")

		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty name")
	})

	t.Run("negative item index", func(t *testing.T) {
		req := New("newInterfaceRequest")
		doc, _ := req.Document(req.AddDocument("invoice"))
		doc.AddItemField("Amount", "546", -1)

		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative item index")
	})

	t.Run("empty file name", func(t *testing.T) {
		req := New("newInterfaceRequest")
		doc, _ := req.Document(req.AddDocument("invoice"))
		doc.AddBytesFile("", []byte("data"))

		_, err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file with an empty name")
	})
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	req := New("")
	req.AddDocument("empty")
	doc, _ := req.Document(req.AddDocument("bad"))
	doc.AddHeaderField("", "x").AddItemField("Amount", "1", -2)

	_, err := req.Validate()
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, verr.Problems, 4)
}

func TestValidatedRequest_PreservesContent(t *testing.T) {
	csv := []byte("status,paid\n")

	req := New("newInterfaceRequest")
	doc, _ := req.Document(req.AddDocument("invoice"))
	doc.AddHeaderField("InvoiceNumber", "3309979202").
		AddItemField("Amount", "546", 1).
		AddBytesFile("newStatus.csv", csv)

	validated, err := req.Validate()
	require.NoError(t, err)

	got, err := validated.Document(0)
	require.NoError(t, err)

	invoice, ok := got.HeaderField("InvoiceNumber")
	require.True(t, ok)
	assert.Equal(t, "3309979202", invoice)

	amount, ok := got.ItemField("Amount", 1)
	require.True(t, ok)
	assert.Equal(t, "546", amount)

	data, ok := got.FileData("newStatus.csv")
	require.True(t, ok)
	assert.Equal(t, csv, data)
}

func TestValidatedRequest_Body(t *testing.T) {
	req := New("newInterfaceRequest")
	doc, _ := req.Document(req.AddDocument("invoice"))
	doc.AddHeaderField("InvoiceNumber", "3309979202")

	validated, err := req.Validate()
	require.NoError(t, err)

	body, err := validated.Body()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"Name":"newInterfaceRequest","Documents":[{"Name":"invoice","Fields":[{"Name":"InvoiceNumber","Value":"3309979202","ItemNo":0}],"Files":[]}]}`,
		string(body))
}
