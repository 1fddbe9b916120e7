package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSetupModifyFlags(t *testing.T) {
	fs, flags := SetupModifyFlags()

	require.NoError(t, fs.Parse([]string{"-d", "a.yaml", "-i", "1,2", "--in-place", "--id-key", "id", "-f", "yaml", "-q", "spec.json"}))
	assert.Equal(t, "a.yaml", flags.DocPath)
	assert.Equal(t, "1,2", flags.Indices)
	assert.True(t, flags.InPlace)
	assert.Equal(t, "id", flags.IDKey)
	assert.Equal(t, FormatYAML, flags.Format)
	assert.True(t, flags.Quiet)
	assert.Equal(t, []string{"spec.json"}, fs.Args())
}

func TestSetupModifyFlags_Defaults(t *testing.T) {
	fs, flags := SetupModifyFlags()

	require.NoError(t, fs.Parse([]string{"spec.json"}))
	assert.Equal(t, StdinFilePath, flags.DocPath)
	assert.Equal(t, "_id", flags.IDKey)
	assert.Empty(t, flags.Format)
	assert.False(t, flags.Diff)
	assert.False(t, flags.MergePatch)
}

func TestRunModify_Operators(t *testing.T) {
	doc := writeTestFile(t, "doc.json", `{"_id": 1, "name": "x", "tags": ["a"]}`)

	var stdout, stderr bytes.Buffer
	err := runModify([]string{"-d", doc, `{"$set": {"name": "y"}, "$push": {"tags": "b"}}`}, &stdout, &stderr)
	require.NoError(t, err)

	assert.JSONEq(t, `{"_id": 1, "name": "y", "tags": ["a", "b"]}`, stdout.String())
	assert.Contains(t, stderr.String(), "Mode: operators")
	assert.Contains(t, stderr.String(), "$set name")
	assert.Contains(t, stderr.String(), "$push tags")
}

func TestRunModify_ReplaceYAML(t *testing.T) {
	doc := writeTestFile(t, "doc.yaml", "_id: 7\nname: x\n")
	spec := writeTestFile(t, "spec.json", `{"name": "z"}`)

	var stdout, stderr bytes.Buffer
	err := runModify([]string{"-d", doc, "--in-place", "-q", spec}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "_id: 7\nname: z\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunModify_Positional(t *testing.T) {
	doc := writeTestFile(t, "doc.json", `{"items": [{"qty": 1}, {"qty": 2}]}`)

	var stdout, stderr bytes.Buffer
	err := runModify([]string{"-d", doc, "-i", "1", "-q", `{"$inc": {"items.$.qty": 10}}`}, &stdout, &stderr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items": [{"qty": 1}, {"qty": 12}]}`, stdout.String())
}

func TestRunModify_Diff(t *testing.T) {
	doc := writeTestFile(t, "doc.json", `{"a": 1, "b": 2}`)

	var stdout, stderr bytes.Buffer
	err := runModify([]string{"-d", doc, "--diff", "-q", `{"$set": {"b": 3}}`}, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, `-  "b": 2`)
	assert.Contains(t, out, `+  "b": 3`)
	assert.NotContains(t, out, "\x1b[")
}

func TestRunModify_MergePatch(t *testing.T) {
	doc := writeTestFile(t, "doc.json", `{"a": 1, "b": 2, "c": 3}`)

	var stdout, stderr bytes.Buffer
	err := runModify([]string{"-d", doc, "--merge-patch", "-q", `{"$set": {"b": 5}, "$unset": {"c": 1}}`}, &stdout, &stderr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b": 5, "c": null}`, stdout.String())
}

func TestRunModify_OutputFile(t *testing.T) {
	doc := writeTestFile(t, "doc.json", `{"n": 1}`)
	out := filepath.Join(t.TempDir(), "out.json")

	var stdout, stderr bytes.Buffer
	err := runModify([]string{"-d", doc, "-o", out, `{"$inc": {"n": 1}}`}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Output: "+out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 2}`, string(data))
}

func TestRunModify_Verbose(t *testing.T) {
	doc := writeTestFile(t, "doc.json", `{"n": 1}`)

	var stdout, stderr bytes.Buffer
	err := runModify([]string{"-d", doc, "-v", "-q", `{"$inc": {"n": 1}}`}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "applying operator")
}

func TestRunModify_Errors(t *testing.T) {
	doc := writeTestFile(t, "doc.json", `{"n": "text", "_id": 1}`)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no modifier", []string{"-d", doc}, "exactly one modifier"},
		{"both stdin", []string{"-"}, "both be read from stdin"},
		{"diff and merge patch", []string{"-d", doc, "--diff", "--merge-patch", "{}"}, "cannot be combined"},
		{"bad format", []string{"-d", doc, "-f", "xml", "{}"}, "invalid format"},
		{"bad index", []string{"-d", doc, "-i", "x", "{}"}, "invalid array index"},
		{"missing document", []string{"-d", filepath.Join(t.TempDir(), "missing.json"), "{}"}, "reading document"},
		{"bad modifier", []string{"-d", doc, "{not json"}, "reading modifier"},
		{"type mismatch", []string{"-d", doc, `{"$inc": {"n": 1}}`}, "OperatorTypeMismatch: cannot apply $inc modifier to non-number"},
		{"mixed", []string{"-d", doc, `{"$set": {"a": 1}, "b": 2}`}, "InvalidModifierSpec"},
		{"unsupported", []string{"-d", doc, `{"$bit": {"n": {"and": 1}}}`}, "UnsupportedOperator"},
		{"output overwrites input", []string{"-d", doc, "-o", doc, "{}"}, "would overwrite input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := runModify(tt.args, &stdout, &stderr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRunModify_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, runModify([]string{"--help"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: docmod modify")
}
