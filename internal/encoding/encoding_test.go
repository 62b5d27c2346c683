package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javedfarm/dairybook/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.UTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestUTF8Reader_Passthrough(t *testing.T) {
	input := "Date,Category,Amount\n2024-03-01,Feed/Fodder,₹1200.00\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestUTF8Reader_StripsBOM(t *testing.T) {
	content := "Date,Amount\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)
	assert.Equal(t, content, decode(t, input))
}

func TestUTF8Reader_UTF16LE(t *testing.T) {
	// "Hi\n" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00, '\n', 0x00}
	assert.Equal(t, "Hi\n", decode(t, input))
}

func TestUTF8Reader_Windows1252Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid as a lone UTF-8 byte.
	input := []byte{'C', 'a', 'f', 0xE9, '\n'}
	assert.Equal(t, "Café\n", decode(t, input))
}
