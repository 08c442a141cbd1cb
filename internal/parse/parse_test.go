package parse

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"Oct 21, 2020", time.Date(2020, time.October, 21, 0, 0, 0, 0, time.UTC)},
		{"Feb 05, 2021", time.Date(2021, time.February, 5, 0, 0, 0, 0, time.UTC)},
		{"Mar 7, 1998", time.Date(1998, time.March, 7, 0, 0, 0, 0, time.UTC)},
		{"  Dec 31, 1985 ", time.Date(1985, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		require.NotNil(t, got, tt.in)
		assert.True(t, tt.want.Equal(*got), "%q: got %v", tt.in, got)
	}
}

func TestParseDateAbsent(t *testing.T) {
	for _, in := range []string{"", "   ", "releases on TBD", "releases Dec 2023", "rel"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Nil(t, got, in)
	}
}

func TestParseDateUnknownMonth(t *testing.T) {
	for _, in := range []string{"Okt 21, 2020", "oct 21, 2020", "TBD", "Oct 41, 2020", "Oc"} {
		_, err := ParseDate(in)
		var pe *Error
		require.True(t, errors.As(err, &pe), "%q: expected *parse.Error, got %v", in, err)
		assert.Equal(t, KindDate, pe.Kind)
	}
}

func TestParseMagnitudePlainInteger(t *testing.T) {
	for _, n := range []int64{0, 1, 7, 42, 999, 123456, 9007199254740993} {
		m, err := ParseMagnitude(fmt.Sprint(n))
		require.NoError(t, err)
		assert.Equal(t, Integer, m.Kind)
		assert.Equal(t, n, m.Int)
	}
}

func TestParseMagnitudeThousands(t *testing.T) {
	tests := map[string]int64{
		"3.2K":  3200,
		"1K":    1000,
		"2.3K":  2300,
		"17.9K": 17900,
		"0.5K":  500,
		"1.25K": 1250,
	}
	for in, want := range tests {
		m, err := ParseMagnitude(in)
		require.NoError(t, err, in)
		assert.Equal(t, Integer, m.Kind, in)
		assert.Equal(t, want, m.Int, in)
	}
}

func TestParseMagnitudeDecimalAndAbsent(t *testing.T) {
	m, err := ParseMagnitude("4.5")
	require.NoError(t, err)
	assert.Equal(t, Decimal, m.Kind)
	assert.InDelta(t, 4.5, m.Float, 1e-9)
	require.NotNil(t, m.FloatPtr())
	assert.InDelta(t, 4.5, *m.FloatPtr(), 1e-9)
	assert.Equal(t, int64(5), *m.IntPtr())

	m, err = ParseMagnitude("")
	require.NoError(t, err)
	assert.Equal(t, Absent, m.Kind)
	assert.Nil(t, m.IntPtr())
	assert.Nil(t, m.FloatPtr())
}

func TestParseMagnitudeInvalid(t *testing.T) {
	for _, in := range []string{"abc", "1,000", "K", "x.yK", "4.5.6"} {
		_, err := ParseMagnitude(in)
		var pe *Error
		require.True(t, errors.As(err, &pe), "%q: got %v", in, err)
		assert.Equal(t, KindMagnitude, pe.Kind)
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"[]", []string{}},
		{"['Action', 'Adventure']", []string{"Action", "Adventure"}},
		{`["Assassin's Creed", 'Ubisoft']`, []string{"Assassin's Creed", "Ubisoft"}},
		{`['It\'s fine', 'line\nbreak', 'tab\there']`, []string{"It's fine", "line\nbreak", "tab\there"}},
		{`['caf\xe9', '\u2605', 'back\\slash']`, []string{"café", "★", `back\slash`}},
		{"[ 'a' ,\n 'b', ]", []string{"a", "b"}},
		{`['keep \d unknown']`, []string{`keep \d unknown`}},
	}
	for _, tt := range tests {
		got, err := ParseList(tt.in)
		require.NoError(t, err, tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseList(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestParseListMalformed(t *testing.T) {
	for _, in := range []string{"Action", "['Action'", "['Action' 'RPG']", "[1, 2]", "['unterminated]", `['bad \x4']`, "[[]]"} {
		_, err := ParseList(in)
		var pe *Error
		require.True(t, errors.As(err, &pe), "%q: got %v", in, err)
		assert.Equal(t, KindList, pe.Kind)
	}
}

func TestFormatListRoundTrip(t *testing.T) {
	lists := [][]string{
		{},
		{"Action"},
		{"Action", "Adventure", "RPG"},
		{"Assassin's Creed", `say "hi"`, `both ' and "`},
		{"multi\nline\treview", `C:\games`, "bell\a", "emoji 🎮", "é"},
	}
	for _, items := range lists {
		encoded := FormatList(items)
		got, err := ParseList(encoded)
		require.NoError(t, err, encoded)
		if diff := cmp.Diff(items, got); diff != "" {
			t.Errorf("round trip of %q mismatch (-want +got):\n%s", encoded, diff)
		}
	}
}

func TestFormatListCanonical(t *testing.T) {
	for _, lit := range []string{
		"[]",
		"['Action', 'Adventure']",
		`["Assassin's Creed", 'Ubisoft']`,
		`['It\'s "quoted"', 'a\nb']`,
	} {
		items, err := ParseList(lit)
		require.NoError(t, err)
		assert.Equal(t, lit, FormatList(items))
	}
}
