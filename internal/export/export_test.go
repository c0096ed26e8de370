package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/vocabdrill/internal/words"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Sheet{
		Owner: "Ann",
		Words: []words.Word{
			{ID: 1, English: "cat", Translation: "кот", Transcript: "[kæt]"},
			{ID: 2, English: "dog", Translation: "собака"},
		},
		Misses: map[int64]int{2: 3},
		At:     time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ID", "English", "Transcription", "Russian", "Mistakes"},
		{"1", "cat", "[kæt]", "кот", "0"},
		{"2", "dog", "", "собака", "3"},
	}, rows)

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Ann", props.Creator)
	assert.Equal(t, "Learned words", props.Title)
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Sheet{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
