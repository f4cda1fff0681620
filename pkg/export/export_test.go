package export

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Name:    "Sales Summary",
		Columns: []string{"ID", "Date", "Employee", "Amount"},
		Rows: []Row{
			{"ID": "1", "Date": "2024-01-10", "Employee": "Ann", "Amount": "$10.00"},
			{"ID": "2", "Date": "2024-02-05", "Employee": "Bob", "Amount": "$20.00"},
		},
	}
}

func TestSpreadsheetRoundTrip(t *testing.T) {
	ds := sampleDataset()

	data, err := Spreadsheet{}.Format(ds, Options{})
	require.NoError(t, err)

	back, err := ReadSpreadsheet(data)
	require.NoError(t, err)

	assert.Equal(t, DataSheet, back.Name)
	assert.Equal(t, ds.Columns, back.Columns)
	require.Len(t, back.Rows, len(ds.Rows))
	assert.Equal(t, "Bob", back.Rows[1]["Employee"])
}

func TestSpreadsheetKeepsHashRowsOnDataSheet(t *testing.T) {
	ds := Dataset{
		Name:    "Products",
		Columns: []string{"Name", "Price"},
		Rows: []Row{
			{"Name": "#1 Espresso", "Price": "3.00"},
			{"Name": "Latte", "Price": "4.50"},
		},
	}

	data, err := Spreadsheet{}.Format(ds, Options{})
	require.NoError(t, err)

	back, err := ReadSpreadsheet(data)
	require.NoError(t, err)

	assert.Equal(t, ds.Columns, back.Columns)
	require.Len(t, back.Rows, 2)
	assert.Equal(t, "#1 Espresso", back.Rows[0]["Name"])
	assert.Equal(t, "Latte", back.Rows[1]["Name"])
}

func TestSpreadsheetTemplateWhenEmpty(t *testing.T) {
	ds := Dataset{Name: "Products", Columns: []string{"Name", "Price"}}

	data, err := Spreadsheet{}.Format(ds, Options{})
	require.NoError(t, err)

	back, err := ReadSpreadsheet(data)
	require.NoError(t, err)

	assert.Equal(t, TemplateSheet, back.Name)
	assert.Equal(t, ds.Columns, back.Columns)
	assert.Empty(t, back.Rows)
}

func TestPDFProducesDocument(t *testing.T) {
	data, err := PDF{}.Format(sampleDataset(), Options{Title: "Sales", GeneratedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	empty, err := PDF{}.Format(Dataset{Name: "Nothing"}, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}

func TestCSV(t *testing.T) {
	data, err := CSV{}.Format(sampleDataset(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "ID,Date,Employee,Amount\n1,2024-01-10,Ann,$10.00\n2,2024-02-05,Bob,$20.00\n", string(data))
}

func TestArchiveMembers(t *testing.T) {
	other := Dataset{Name: "Cash Flow", Columns: []string{"ID", "Amount"}}

	data, err := Archive{}.Bundle([]Dataset{sampleDataset(), other}, Options{})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.NotEmpty(t, body)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"Cash_Flow.csv", "Cash_Flow.pdf", "Sales_Summary.csv", "Sales_Summary.pdf"}, names)
}

func TestFileNames(t *testing.T) {
	at := time.Date(2024, 5, 17, 13, 0, 0, 0, time.UTC)

	assert.Equal(t, "all_reports_2024-05-17.zip", ArchiveName(at))
	assert.Equal(t, "Bank_Accounts_2024-05-17.xlsx", FileName("Bank Accounts", at, "xlsx"))
}

func TestLookup(t *testing.T) {
	f, err := Lookup("XLSX")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", f.Extension())

	_, err = Lookup("docx")
	assert.Error(t, err)
}
