// Package commands provides CLI command handlers for docmod.
package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/docmod/internal/cliutil"
	"github.com/erraggy/docmod/value"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat returns an error unless format is one of allowed.
func ValidateOutputFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(allowed, ", "))
}

// FormatFromPath infers the document format from a file extension.
// YAML extensions give yaml; everything else, stdin included, gives json.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s\n", bytes.TrimRight(out, "\n"))
	return nil
}

// MarshalValue renders a document-model value in the specified format.
// JSON output is indented and both forms end with a newline.
func MarshalValue(v any, format string) ([]byte, error) {
	var out []byte
	var err error
	if format == FormatYAML {
		out, err = value.MarshalYAML(v)
	} else {
		out, err = value.MarshalJSONIndent(v, "", "  ")
	}
	if err != nil {
		return nil, err
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}

// ReadInput reads a file, or stdin when path is StdinFilePath.
func ReadInput(path string) ([]byte, error) {
	if path == StdinFilePath {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path) //nolint:gosec // G304: the CLI reads user-chosen files
}

// ParseIndices parses a comma separated list of non-negative array indices.
func ParseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid array index %q: must be a non-negative integer", p)
		}
		out = append(out, n)
	}
	return out, nil
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(stderr io.Writer, outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == "" || inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	if _, err := os.Stat(outputPath); err == nil {
		cliutil.Warnf(stderr, "output file %s already exists and will be overwritten", outputPath)
	}
	return RejectSymlinkOutput(filepath.Clean(outputPath))
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// FormatPath returns a display-friendly path.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}
