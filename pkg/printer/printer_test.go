package printer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsPrinter(t *testing.T) {
	p, err := New(Config{Type: "none"})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())

	_, err = New(Config{Type: "usb"})
	assert.Error(t, err)

	_, err = New(Config{Type: "bluetooth"})
	assert.Error(t, err)
}

func TestMemoryPrinterKeepsJobs(t *testing.T) {
	p := NewMemoryPrinter()
	require.NoError(t, p.Print(context.Background(), []byte("one")))
	require.NoError(t, p.Print(context.Background(), []byte("two")))

	jobs := p.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "two", string(jobs[1]))
}

func TestPairFitsWidth(t *testing.T) {
	d := NewDocument(20)
	d.Pair("Subtotal", "$25.00")
	d.Item(2, "A very long product name", "$20.00")

	lines := strings.Split(strings.TrimRight(string(d.Bytes()[2:]), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Len(t, []rune(l), 20)
	}
	assert.True(t, strings.HasSuffix(lines[1], "$20.00"))
}

func TestDocumentStartsWithInit(t *testing.T) {
	d := NewDocument(0)
	assert.Equal(t, Width58mm, d.Width())
	assert.True(t, bytes.HasPrefix(d.Bytes(), []byte{esc, '@'}))
}
