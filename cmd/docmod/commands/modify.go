package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	json "github.com/goccy/go-json"

	"github.com/erraggy/docmod/docerrors"
	"github.com/erraggy/docmod/internal/cliutil"
	"github.com/erraggy/docmod/modifier"
	"github.com/erraggy/docmod/value"
)

// ModifyFlags contains flags for the modify command
type ModifyFlags struct {
	DocPath    string
	Indices    string
	InPlace    bool
	IDKey      string
	AllowMixed bool
	Format     string
	Output     string
	Diff       bool
	MergePatch bool
	NoColor    bool
	Quiet      bool
	Verbose    bool
}

// SetupModifyFlags creates and configures a FlagSet for the modify command.
// Returns the FlagSet and a ModifyFlags struct with bound flag variables.
func SetupModifyFlags() (*flag.FlagSet, *ModifyFlags) {
	fs := flag.NewFlagSet("modify", flag.ContinueOnError)
	flags := &ModifyFlags{}

	fs.StringVar(&flags.DocPath, "doc", StdinFilePath, "document file (JSON or YAML), - for stdin")
	fs.StringVar(&flags.DocPath, "d", StdinFilePath, "document file (shorthand)")
	fs.StringVar(&flags.Indices, "index", "", "comma separated array indices for positional '$' segments")
	fs.StringVar(&flags.Indices, "i", "", "array indices (shorthand)")
	fs.BoolVar(&flags.InPlace, "in-place", false, "keep the document's identity field when the modifier replaces it")
	fs.StringVar(&flags.IDKey, "id-key", modifier.DefaultIDKey, "identity field kept by --in-place")
	fs.BoolVar(&flags.AllowMixed, "allow-mixed", false, "tolerate modifiers mixing $-operators and plain fields")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: from the document's extension)")
	fs.StringVar(&flags.Format, "f", "", "output format (shorthand)")
	fs.StringVar(&flags.Output, "output", "", "write the result to a file instead of stdout")
	fs.StringVar(&flags.Output, "o", "", "output file (shorthand)")
	fs.BoolVar(&flags.Diff, "diff", false, "print a line diff of the document instead of the result")
	fs.BoolVar(&flags.MergePatch, "merge-patch", false, "print the RFC 7386 JSON merge patch from the document to the result")
	fs.BoolVar(&flags.NoColor, "no-color", false, "disable colored diff output")
	fs.BoolVar(&flags.Quiet, "quiet", false, "suppress the change summary")
	fs.BoolVar(&flags.Quiet, "q", false, "suppress the change summary (shorthand)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log every operator application to stderr")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose logging (shorthand)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: docmod modify [flags] <modifier>\n\n")
		cliutil.Writef(fs.Output(), "Apply a modifier document to a document.\n\n")
		cliutil.Writef(fs.Output(), "The modifier is a file path, - for stdin, or an inline JSON object.\n")
		cliutil.Writef(fs.Output(), "A modifier made of plain fields replaces the document; one made of\n")
		cliutil.Writef(fs.Output(), "update operators ($set, $inc, $push, ...) applies them in order.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  docmod modify -d user.yaml update.json\n")
		cliutil.Writef(fs.Output(), "  docmod modify -d user.json '{\"$inc\": {\"visits\": 1}}'\n")
		cliutil.Writef(fs.Output(), "  docmod modify -d order.json -i 2 '{\"$set\": {\"items.$.qty\": 5}}'\n")
		cliutil.Writef(fs.Output(), "  cat user.json | docmod modify --diff update.json\n")
		cliutil.Writef(fs.Output(), "  docmod modify -d user.json --merge-patch update.json | curl -X PATCH --data-binary @- ...\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    The modifier applied cleanly\n")
		cliutil.Writef(fs.Output(), "  1    Invalid input or the modifier failed; the document is not written\n")
	}

	return fs, flags
}

// HandleModify executes the modify command
func HandleModify(args []string) error {
	return runModify(args, os.Stdout, os.Stderr)
}

func runModify(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupModifyFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("modify command requires exactly one modifier")
	}
	specArg := fs.Arg(0)

	if flags.Diff && flags.MergePatch {
		return fmt.Errorf("--diff and --merge-patch cannot be combined")
	}
	if flags.DocPath == StdinFilePath && specArg == StdinFilePath {
		return fmt.Errorf("document and modifier cannot both be read from stdin")
	}
	format := flags.Format
	if format == "" {
		format = FormatFromPath(flags.DocPath)
	}
	if err := ValidateOutputFormat(format, FormatJSON, FormatYAML); err != nil {
		return err
	}
	indices, err := ParseIndices(flags.Indices)
	if err != nil {
		return err
	}

	doc, err := loadDocument(flags.DocPath)
	if err != nil {
		return fmt.Errorf("reading document %s: %w", FormatPath(flags.DocPath), err)
	}
	spec, err := loadModifier(specArg)
	if err != nil {
		return fmt.Errorf("reading modifier: %w", err)
	}
	before := doc.Clone()

	logger := modifier.Logger(modifier.NopLogger{})
	if flags.Verbose {
		logger = modifier.NewSlogAdapter(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	result, err := modifier.ModifyWithOptions(
		modifier.WithDocument(doc),
		modifier.WithSpec(spec),
		modifier.WithArrayIndices(indices...),
		modifier.WithInPlace(flags.InPlace),
		modifier.WithIDKey(flags.IDKey),
		modifier.WithAllowMixedOperators(flags.AllowMixed),
		modifier.WithLogger(logger),
	)
	if err != nil {
		if kind := docerrors.KindOf(err); kind != docerrors.KindUnknown {
			return fmt.Errorf("%s: %w", kind, err)
		}
		return err
	}

	if !flags.Quiet {
		cliutil.Writef(stderr, "Mode: %s\n", result.Mode)
		for _, c := range result.Changes {
			cliutil.Writef(stderr, "  %s %s\n", c.Operator, c.Path)
		}
	}

	var out []byte
	switch {
	case flags.MergePatch:
		out, err = mergePatch(before, result.Document)
	case flags.Diff:
		out, err = lineDiff(before, result.Document, format, !flags.NoColor && flags.Output == "" && cliutil.IsTerminal(stdout))
	default:
		out, err = MarshalValue(result.Document, format)
	}
	if err != nil {
		return err
	}

	if flags.Output == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := ValidateOutputPath(stderr, flags.Output, []string{flags.DocPath, specArg}); err != nil {
		return err
	}
	if err := os.WriteFile(flags.Output, out, 0o600); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !flags.Quiet {
		cliutil.Writef(stderr, "Output: %s\n", flags.Output)
	}
	return nil
}

func loadDocument(path string) (*value.Document, error) {
	data, err := ReadInput(path)
	if err != nil {
		return nil, err
	}
	return value.ParseDocument(data)
}

// loadModifier reads an inline JSON object or a modifier file.
func loadModifier(arg string) (*value.Document, error) {
	if strings.HasPrefix(strings.TrimSpace(arg), "{") {
		return value.ParseDocument([]byte(arg))
	}
	return loadDocument(arg)
}

// mergePatch returns the JSON merge patch turning before into after.
func mergePatch(before, after *value.Document) ([]byte, error) {
	from, err := value.MarshalJSON(before)
	if err != nil {
		return nil, err
	}
	to, err := value.MarshalJSON(after)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(from, to)
	if err != nil {
		return nil, fmt.Errorf("creating merge patch: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, patch, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func lineDiff(before, after *value.Document, format string, colored bool) ([]byte, error) {
	from, err := MarshalValue(before, format)
	if err != nil {
		return nil, err
	}
	to, err := MarshalValue(after, format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	cliutil.WriteDiff(&buf, string(from), string(to), colored)
	return buf.Bytes(), nil
}
