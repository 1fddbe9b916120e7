package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erraggy/docmod/internal/cliutil"
	"github.com/erraggy/docmod/value"
)

// CompareFlags contains flags for the compare command
type CompareFlags struct {
	Format string
}

// CompareResult is the structured output of the compare command.
type CompareResult struct {
	Order        int    `json:"order" yaml:"order"`
	Equal        bool   `json:"equal" yaml:"equal"`
	EqualOrdered bool   `json:"equal_ordered" yaml:"equal_ordered"`
	LeftType     string `json:"left_type" yaml:"left_type"`
	RightType    string `json:"right_type" yaml:"right_type"`
}

// SetupCompareFlags creates and configures a FlagSet for the compare command.
// Returns the FlagSet and a CompareFlags struct with bound flag variables.
func SetupCompareFlags() (*flag.FlagSet, *CompareFlags) {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	flags := &CompareFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Format, "f", FormatText, "output format (shorthand)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: docmod compare [flags] <a> <b>\n\n")
		cliutil.Writef(fs.Output(), "Compare two values under the document ordering.\n\n")
		cliutil.Writef(fs.Output(), "Each value is a JSON or YAML literal; a leading @ reads it from a file.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  docmod compare 5 '\"5\"'\n")
		cliutil.Writef(fs.Output(), "  docmod compare -f json '{\"a\":1,\"b\":2}' '{\"b\":2,\"a\":1}'\n")
		cliutil.Writef(fs.Output(), "  docmod compare @old.json @new.json\n")
	}

	return fs, flags
}

// HandleCompare executes the compare command
func HandleCompare(args []string) error {
	return runCompare(args, os.Stdout, os.Stderr)
}

func runCompare(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupCompareFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("compare command requires exactly two values")
	}
	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}

	left, err := loadLiteral(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("first value: %w", err)
	}
	right, err := loadLiteral(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("second value: %w", err)
	}

	result, err := CompareValues(left, right)
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(stdout, result, flags.Format)
	}
	symbol := map[int]string{-1: "<", 0: "==", 1: ">"}[result.Order]
	cliutil.Writef(stdout, "%s %s %s\n", result.LeftType, symbol, result.RightType)
	cliutil.Writef(stdout, "Equal: %t\n", result.Equal)
	cliutil.Writef(stdout, "Equal (key order): %t\n", result.EqualOrdered)
	return nil
}

// CompareValues compares two document-model values.
func CompareValues(left, right any) (*CompareResult, error) {
	order, err := value.Compare(left, right)
	if err != nil {
		return nil, err
	}
	switch {
	case order < 0:
		order = -1
	case order > 0:
		order = 1
	}
	return &CompareResult{
		Order:        order,
		Equal:        value.Equal(left, right),
		EqualOrdered: value.EqualOrdered(left, right),
		LeftType:     value.Classify(left).String(),
		RightType:    value.Classify(right).String(),
	}, nil
}

func loadLiteral(arg string) (any, error) {
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		data, err := ReadInput(path)
		if err != nil {
			return nil, err
		}
		return value.Parse(data)
	}
	return value.Parse([]byte(arg))
}
