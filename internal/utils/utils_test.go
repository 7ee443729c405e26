package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList("2,3, 7")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 7}, ids)

	ids, err = ParseIDList("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = ParseIDList("2,x")
	assert.Error(t, err)
	_, err = ParseIDList("0")
	assert.Error(t, err)
}

func TestParseDateIsUTC(t *testing.T) {
	d, err := ParseDate("2025-05-13")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2025-05-13", FormatDate(d))
}

func TestParseDateTime(t *testing.T) {
	want := time.Date(2025, 5, 8, 6, 30, 0, 0, time.UTC)
	for _, in := range []string{"2025-05-08T06:30:00Z", "2025-05-08T09:30:00+03:00", "2025-05-08 06:30:00", "2025-05-08T06:30"} {
		got, err := ParseDateTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s -> %s", in, got)
	}
	_, err := ParseDateTime("yesterday")
	assert.Error(t, err)
}
