package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsSkipsHeaderAndBlankLines(t *testing.T) {
	src := "name,price\r\n콜라, 1000 \r\n\r\n   \r\n사이다,1000\r\n"

	var got [][]string
	var lines []int
	err := Rows(strings.NewReader(src), func(line int, fields []string) error {
		lines = append(lines, line)
		got = append(got, fields)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, lines)
	assert.Equal(t, [][]string{{"콜라", "1000"}, {"사이다", "1000"}}, got)
}

func TestRowsStopsOnCallbackError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Rows(strings.NewReader("h\na\nb\n"), func(int, []string) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRowsEmptyInput(t *testing.T) {
	err := Rows(strings.NewReader(""), func(int, []string) error {
		t.Fatal("no rows expected")
		return nil
	})
	assert.NoError(t, err)
}
