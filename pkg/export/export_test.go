package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title:   "Class attendance",
		Columns: []string{"Student", "Present", "Absent"},
		Rows: [][]string{
			{"James Wilson", "1", "0"},
			{"Wilson, Brandy", "0", "1"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestRenderCSV(t *testing.T) {
	out, err := Render(FormatCSV, sampleTable())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Student", "Present", "Absent"}, records[0])
	assert.Equal(t, "Wilson, Brandy", records[2][0])
}

func TestRenderPDF(t *testing.T) {
	table := sampleTable()
	for i := 0; i < 80; i++ {
		table.Rows = append(table.Rows, []string{"Student", "1", "0"})
	}
	out, err := Render(FormatPDF, table)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderRejectsMalformedTables(t *testing.T) {
	_, err := Render(FormatCSV, Table{})
	assert.Error(t, err)

	_, err = Render(FormatCSV, Table{Columns: []string{"a", "b"}, Rows: [][]string{{"1"}}})
	assert.Error(t, err)

	_, err = Render(Format("xml"), sampleTable())
	assert.Error(t, err)
}
