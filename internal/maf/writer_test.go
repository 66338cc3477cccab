package maf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestWriter_HeaderAndRecords(t *testing.T) {
	var buf bytes.Buffer

	s := ParseHeader("CHROM\tPOS\tFILTER")
	w := NewWriter(&buf, s)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(NewRecord(s, []string{"1", "100", "PASS"}, 2)))
	require.NoError(t, w.Write(NewRecord(s, []string{"", "", "PASS"}, 3)))

	assert.Empty(t, buf.String(), "output is buffered until Flush")

	require.NoError(t, w.Flush())
	assert.Equal(t, "CHROM\tPOS\tFILTER\n1\t100\tPASS\n\t\tPASS\n", buf.String())
}

func TestWriter_RoundTripIsVerbatim(t *testing.T) {
	input := "Hugo_Symbol\tHGVSp\tFILTER\n" +
		"TP53\tp.R175H\tPASS\n" +
		"KRAS\t\"p.G12D\"\tPASS\n" +
		"EGFR\tp.L858R, see note\tPASS\n"

	rd, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	var buf bytes.Buffer

	w := NewWriter(&buf, rd.Schema())
	require.NoError(t, w.WriteHeader())

	for rec, err := range rd.All() {
		require.NoError(t, err)
		require.NoError(t, w.Write(rec))
	}

	require.NoError(t, w.Flush())
	assert.Equal(t, input, buf.String())
}

func TestWriter_FlushFailure(t *testing.T) {
	w := NewWriter(failingWriter{}, ParseHeader("A\tFILTER"), WithName("out.maf"))

	require.NoError(t, w.WriteHeader())

	err := w.Flush()

	var outErr *OutputError
	require.ErrorAs(t, err, &outErr)
	assert.Equal(t, "out.maf", outErr.Path)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWriter_LargeRecordFailsOnWrite(t *testing.T) {
	s := ParseHeader("A\tFILTER")
	w := NewWriter(failingWriter{}, s)

	big := strings.Repeat("x", 64*1024)
	err := w.Write(NewRecord(s, []string{big, "PASS"}, 2))

	var outErr *OutputError
	assert.ErrorAs(t, err, &outErr)
}
