package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bàn thao tác", "ban-thao-tac"},
		{"Gia công cơ khí chính xác", "gia-cong-co-khi-chinh-xac"},
		{"Cửa cuốn Đức", "cua-cuon-duc"},
		{"Đà Nẵng", "da-nang"},
		{"Kệ  chứa   hàng", "ke-chua-hang"},
		{"Inox 304 (dày 2mm)", "inox-304-day-2mm"},
		{"  --Hello World--  ", "hello-world"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.in), "input %q", tc.in)
	}
}

func TestMergeImageUrls(t *testing.T) {
	old := []string{"a", "b", "c"}

	// removals drop out, additions append, order is old-first
	got := MergeImageUrls(old, []string{"b"}, []string{"d", "e"})
	assert.Equal(t, []string{"a", "c", "d", "e"}, got)

	// adding an already-present URL does not duplicate it
	got = MergeImageUrls(old, nil, []string{"c", "d", "d"})
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)

	assert.Equal(t, []string{}, MergeImageUrls(nil, nil, nil))
}

func TestIntersectStrings(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, IntersectStrings([]string{"b", "x", "a"}, []string{"a", "b"}))
	assert.Equal(t, []string{}, IntersectStrings([]string{"x"}, []string{"y"}))
	assert.Equal(t, []string{}, IntersectStrings(nil, []string{"y"}))
}
