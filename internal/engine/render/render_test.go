package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/akyaiy/godoit/idoit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_Table(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, false).Search([]idoit.SearchResult{
		{DocumentID: "1", Key: "Server > Global > Title", Value: "web01", Score: 100, Link: "/?objID=1"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "web01")
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "TOTAL")
}

func TestSearch_JSON(t *testing.T) {
	var buf bytes.Buffer
	in := []idoit.SearchResult{{DocumentID: "1", Value: "web01", Score: 7}}
	require.NoError(t, New(&buf, true).Search(in))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "web01", out[0]["value"])
	assert.Equal(t, float64(7), out[0]["score"])
}

func TestConstants_Sorted(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, false).Constants(&idoit.Constants{
		ObjectTypes: map[string]string{
			"C__OBJTYPE__SERVER":   "Server",
			"C__OBJTYPE__BUILDING": "Building",
		},
		Categories: idoit.CategoryConstants{
			Global: map[string]string{"C__CATG__CPU": "CPU"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Less(t, strings.Index(out, "C__OBJTYPE__BUILDING"), strings.Index(out, "C__OBJTYPE__SERVER"))
	assert.Contains(t, out, "C__CATG__CPU")
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)
	require.NoError(t, r.Created(&idoit.ObjectCreateResult{ID: 42, Message: "Object was successfully created", Success: true}))
	require.NoError(t, r.Status(&idoit.StatusResult{Success: true, Message: "Object archived"}))
	assert.Equal(t, "Object was successfully created: id 42\nObject archived\n", buf.String())

	buf.Reset()
	require.NoError(t, New(&buf, true).Message("Logged out"))
	assert.JSONEq(t, `{"message":"Logged out"}`, buf.String())
}
