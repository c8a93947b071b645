package imagegen

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenPerRune makes widths easy to reason about.
func tenPerRune(s string) int { return 10 * len([]rune(s)) }

func TestLayout_FitsOnOneLine(t *testing.T) {
	got := Layout([]Segment{{Text: "abc"}, {Text: "de", Highlight: true}}, tenPerRune, 100)

	require.Len(t, got, 2)
	assert.Equal(t, Placement{Segment: Segment{Text: "abc"}, X: 0, Line: 0}, got[0])
	assert.Equal(t, Placement{Segment: Segment{Text: "de", Highlight: true}, X: 30, Line: 0}, got[1])
}

func TestLayout_WrapsOverflowingSegment(t *testing.T) {
	segs := []Segment{{Text: "aaaaa"}, {Text: "bbbb"}, {Text: "cc"}, {Text: "d"}}

	got := Layout(segs, tenPerRune, 100)

	// a=50, b would reach 90 (fits), c would reach 110 (wraps), d fits after c.
	assert.Equal(t, []int{0, 0, 1, 1}, []int{got[0].Line, got[1].Line, got[2].Line, got[3].Line})
	assert.Equal(t, []int{0, 50, 0, 20}, []int{got[0].X, got[1].X, got[2].X, got[3].X})
}

func TestLayout_ExactFitStaysOnLine(t *testing.T) {
	got := Layout([]Segment{{Text: "aaaaa"}, {Text: "bbbbb"}}, tenPerRune, 100)
	assert.Equal(t, 0, got[1].Line)
}

func TestLayout_OversizedSegmentNeverLeavesBlankLine(t *testing.T) {
	got := Layout([]Segment{{Text: "this is far too wide"}, {Text: "x"}}, tenPerRune, 50)

	assert.Equal(t, 0, got[0].Line)
	assert.Equal(t, 0, got[0].X)
	assert.Equal(t, 1, got[1].Line)
}

func TestCard_Segments(t *testing.T) {
	c := Card{ProductName: "iPhone 12", ReleaseDate: "2020-10-23", ProductPrice: 1299.5, SolAmount: 481.2963, CurrentValue: 96259.26}

	var text string
	for _, s := range c.Segments() {
		text += s.Text
	}
	assert.Equal(t, "on October 2020, instead of spending $1,299.50 on a iPhone 12, I would have 481.296 SOL that would be worth $96,259.26 today.", text)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "unknown date", formatMonth(""))
	assert.Equal(t, "March 2024", formatMonth("2024-03-01"))
	assert.Equal(t, "999.00", formatMoney(999))
	assert.Equal(t, "1,234,567.89", formatMoney(1234567.891))
	assert.Equal(t, "-1,000.00", formatMoney(-1000))
	assert.Equal(t, "555", formatSol(555))
	assert.Equal(t, "12,345.5", formatSol(12345.5))
}

func TestRender_PNG(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, dark := range []bool{false, true} {
		data, err := r.Render(Card{ProductName: "Steam Deck", ReleaseDate: "2022-02-25", ProductPrice: 399, SolAmount: 4.337, CurrentValue: 867.39, DarkMode: dark})
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, Width, img.Bounds().Dx())
		assert.Equal(t, Height, img.Bounds().Dy())
	}
}

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"3f2b8c1e-7d4a-4c55-9a3e-2b1f0e9d8c7a.png", "card.PNG"} {
		assert.NoError(t, ValidateName(ok), ok)
	}
	for _, bad := range []string{"", ".png", "../secret.png", "a/b.png", `a\b.png`, "x..png", "image.jpg", "passwd"} {
		assert.ErrorIs(t, ValidateName(bad), ErrInvalidName, bad)
	}
}

func TestStore_SaveAndOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shared-images")
	s, err := NewStore(dir)
	require.NoError(t, err)

	name, err := s.Save([]byte("png-bytes"))
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, name)

	data, err := s.Open(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	_, err = s.Open("00000000-0000-0000-0000-000000000000.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Open("../" + name)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
