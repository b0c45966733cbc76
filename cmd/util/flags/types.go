package flags

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/bacalhau-project/lambdapushdown/cmd/util/output"
	"github.com/bacalhau-project/lambdapushdown/pkg/logger"
)

// A Parser is a function that can convert a string into a native object.
type Parser[T any] func(string) (T, error)

// A Stringer is a function that can convert a native object into a string.
type Stringer[T any] func(*T) string

// A ValueFlag is a pflag.Value that parses its command line string into a
// native value.
type ValueFlag[T any] struct {
	value    *T
	parser   Parser[T]
	stringer Stringer[T]
	typeStr  string
}

// Set implements pflag.Value
func (s *ValueFlag[T]) Set(input string) error {
	value, err := s.parser(input)
	*s.value = value
	return err
}

// String implements pflag.Value
func (s *ValueFlag[T]) String() string {
	return s.stringer(s.value)
}

// Type implements pflag.Value
func (s *ValueFlag[T]) Type() string {
	return s.typeStr
}

var _ pflag.Value = (*ValueFlag[int])(nil)

func LoggingFlag(value *logger.LogMode) *ValueFlag[logger.LogMode] {
	return &ValueFlag[logger.LogMode]{
		value:    value,
		parser:   logger.ParseLogMode,
		stringer: func(p *logger.LogMode) string { return string(*p) },
		typeStr:  "logging-mode",
	}
}

func OutputFormatFlag(value *output.OutputFormat) *ValueFlag[output.OutputFormat] {
	return &ValueFlag[output.OutputFormat]{
		value:    value,
		parser:   output.ParseOutputFormat,
		stringer: func(p *output.OutputFormat) string { return string(*p) },
		typeStr:  "format",
	}
}

// OutputFormatFlags registers the output flags shared by listing commands.
func OutputFormatFlags(settings *output.OutputOptions) *pflag.FlagSet {
	flags := pflag.NewFlagSet("Output format", pflag.ContinueOnError)
	flags.Var(OutputFormatFlag(&settings.Format), "output",
		"The output format for the command (one of "+formats()+")")
	flags.BoolVar(&settings.HideHeader, "hide-header", settings.HideHeader,
		"Do not print the column headers.")
	flags.BoolVar(&settings.NoStyle, "no-style", settings.NoStyle,
		"Remove all styling from table output.")
	return flags
}

func formats() string {
	names := make([]string, 0, len(output.AllFormats))
	for _, f := range output.AllFormats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
