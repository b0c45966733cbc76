//go:build unit || !integration

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

var columns = []TableColumn[row]{
	{ColumnConfig: table.ColumnConfig{Name: "name"}, Value: func(r row) string { return r.Name }},
}

func render(t *testing.T, format OutputFormat) string {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, Output(cmd, columns, OutputOptions{Format: format}, []row{{Name: "c1", Count: 2}}))
	return out.String()
}

func TestOutputFormats(t *testing.T) {
	require.Contains(t, render(t, TableFormat), "c1")
	require.Equal(t, "name\nc1", strings.TrimSpace(render(t, CSVFormat)))
	require.Contains(t, render(t, JSONFormat), `"count": 2`)
	require.Equal(t, "- count: 2\n  name: c1\n", render(t, YAMLFormat))
}

func TestParseOutputFormat(t *testing.T) {
	format, err := ParseOutputFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, JSONFormat, format)

	_, err = ParseOutputFormat("xml")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "xml"))
}
