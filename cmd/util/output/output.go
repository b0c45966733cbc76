package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

type OutputFormat string

const (
	TableFormat OutputFormat = "table"
	CSVFormat   OutputFormat = "csv"
	JSONFormat  OutputFormat = "json"
	YAMLFormat  OutputFormat = "yaml"
)

var AllFormats = []OutputFormat{TableFormat, CSVFormat, JSONFormat, YAMLFormat}

func ParseOutputFormat(s string) (OutputFormat, error) {
	for _, f := range AllFormats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q, must be one of %v", s, AllFormats)
}

type OutputOptions struct {
	Format     OutputFormat
	HideHeader bool
	NoStyle    bool
}

type TableColumn[T any] struct {
	table.ColumnConfig
	Value func(T) string
}

// Output renders items as a table or csv through columns, or marshals them
// whole for the other formats.
func Output[T any](cmd *cobra.Command, columns []TableColumn[T], options OutputOptions, items []T) error {
	switch options.Format {
	case TableFormat, CSVFormat, "":
		outputTable(cmd, columns, options, items)
		return nil
	case JSONFormat:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(items)
	case YAMLFormat:
		b, err := yaml.Marshal(items)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	default:
		return fmt.Errorf("invalid format %q", options.Format)
	}
}

func outputTable[T any](cmd *cobra.Command, columns []TableColumn[T], options OutputOptions, items []T) {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	if options.NoStyle {
		tw.SetStyle(table.StyleLight)
		tw.Style().Options.DrawBorder = false
		tw.Style().Options.SeparateColumns = false
		tw.Style().Options.SeparateHeader = false
	} else {
		tw.SetStyle(table.StyleRounded)
	}

	configs := make([]table.ColumnConfig, 0, len(columns))
	header := make(table.Row, 0, len(columns))
	for _, column := range columns {
		configs = append(configs, column.ColumnConfig)
		header = append(header, column.Name)
	}
	tw.SetColumnConfigs(configs)
	if !options.HideHeader {
		tw.AppendHeader(header)
	}

	for _, item := range items {
		row := make(table.Row, 0, len(columns))
		for _, column := range columns {
			row = append(row, column.Value(item))
		}
		tw.AppendRow(row)
	}

	if options.Format == CSVFormat {
		tw.RenderCSV()
	} else {
		tw.Render()
	}
}

func RedStr(s string) string {
	return text.FgRed.Sprint(s)
}

func GreenStr(s string) string {
	return text.FgGreen.Sprint(s)
}
