package wacc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeFile writes content to name in a temporary directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const (
	costBasisCSV = "Scrip Name,WACC Rate\nabc,100\n"
	holdingsCSV  = "S.N,Scrip,Current Balance,Last Closing Price,LTP\n1,ABC,10,14,15\n,Total :,10,,\n"
)

func TestFormatOf(t *testing.T) {
	assert.Equal(t, XLSX, FormatOf("export.XLSX"))
	assert.Equal(t, CSV, FormatOf("export.csv"))
	assert.Equal(t, CSV, FormatOf("export"))
}

func TestLoadSources(t *testing.T) {
	costBasis, holdings, err := LoadSources(context.Background(),
		writeFile(t, "wacc.csv", costBasisCSV),
		writeFile(t, "holdings.csv", holdingsCSV),
	)
	require.NoError(t, err)
	require.Len(t, costBasis, 1)
	require.Len(t, holdings, 2)

	rows := Reconcile(costBasis, holdings)
	require.Len(t, rows, 1)
	assert.Equal(t, "-850.00", rows[0].Get(ColumnDifference))
}

func TestLoadSources_Workbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Scrip Name", "WACC Rate"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"ABC", 100}))
	path := filepath.Join(t.TempDir(), "wacc.xlsx")
	require.NoError(t, f.SaveAs(path))

	costBasis, _, err := LoadSources(context.Background(), path, writeFile(t, "holdings.csv", holdingsCSV))
	require.NoError(t, err)
	require.Len(t, costBasis, 1)
	assert.Equal(t, "100", costBasis[0].Get("WACC Rate"))
}

func TestLoadSources_Missing(t *testing.T) {
	holdings := writeFile(t, "holdings.csv", holdingsCSV)
	missing := filepath.Join(t.TempDir(), "nope.csv")

	tests := []struct {
		name                string
		costBasis, holdings string
	}{
		{"no cost basis", "", holdings},
		{"no holdings", holdings, ""},
		{"cost basis does not exist", missing, holdings},
		{"directory", t.TempDir(), holdings},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := LoadSources(context.Background(), tc.costBasis, tc.holdings)
			assert.ErrorIs(t, err, ErrMissingSource)
		})
	}
}

func TestLoadSources_MissingBeforeParsing(t *testing.T) {
	// the present source is not even a valid workbook, the missing one
	// is reported anyway.
	broken := writeFile(t, "broken.xlsx", "not a workbook")
	_, _, err := LoadSources(context.Background(), broken, "")
	require.ErrorIs(t, err, ErrMissingSource)
	var ierr *IngestError
	assert.False(t, errors.As(err, &ierr))
}

func TestLoadSources_IngestError(t *testing.T) {
	broken := writeFile(t, "broken.xlsx", "not a workbook")
	_, _, err := LoadSources(context.Background(), writeFile(t, "wacc.csv", costBasisCSV), broken)

	var ierr *IngestError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, broken, ierr.Source)
	assert.Equal(t, XLSX, ierr.Format)
}

func TestLoadSources_RaggedLines(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := log.WithContext(context.Background())

	_, holdings, err := LoadSources(ctx,
		writeFile(t, "wacc.csv", costBasisCSV),
		writeFile(t, "holdings.csv", "Scrip,Current Balance,LTP\nABC,10\nXYZ,2,5,extra\nTOTAL,,\n"),
	)
	require.NoError(t, err)
	require.Len(t, holdings, 3)
	assert.Equal(t, "", holdings[0].Get("LTP"))
	assert.Equal(t, "5", holdings[1].Get("LTP"))

	logs := buf.String()
	assert.Contains(t, logs, `"line":2,"fields":2,"columns":3,"message":"padding short line"`)
	assert.Contains(t, logs, `"line":3,"fields":4,"columns":3,"message":"dropping extra fields"`)
	assert.NotContains(t, logs, `"line":4`)
}

func TestLoadSources_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := LoadSources(ctx,
		writeFile(t, "wacc.csv", costBasisCSV),
		writeFile(t, "holdings.csv", holdingsCSV),
	)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadSource(t *testing.T) {
	records, err := LoadSource(writeFile(t, "wacc.csv", costBasisCSV))
	require.NoError(t, err)
	require.Len(t, records, 1)

	_, err = LoadSource(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, ErrMissingSource)
}
