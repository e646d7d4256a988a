package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestResolveWindow_Limit(t *testing.T) {
	tests := []struct {
		name     string
		rawLimit *int
		want     int
	}{
		{name: "absent", rawLimit: nil, want: 20},
		{name: "zero", rawLimit: intPtr(0), want: 20},
		{name: "negative", rawLimit: intPtr(-5), want: 20},
		{name: "in range", rawLimit: intPtr(50), want: 50},
		{name: "lower bound", rawLimit: intPtr(1), want: 1},
		{name: "just below max", rawLimit: intPtr(99), want: 99},
		{name: "equal to max", rawLimit: intPtr(100), want: 20},
		{name: "above max", rawLimit: intPtr(150), want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ResolveWindow(tt.rawLimit, nil)

			assert.Equal(t, tt.want, w.Limit)
			assert.Equal(t, w.Limit, w.Size)
		})
	}
}

func TestResolveWindow_Page(t *testing.T) {
	tests := []struct {
		name       string
		rawPage    *int
		wantPage   int
		wantOffset int
	}{
		{name: "absent", rawPage: nil, wantPage: 1, wantOffset: 0},
		{name: "first", rawPage: intPtr(1), wantPage: 1, wantOffset: 0},
		{name: "third", rawPage: intPtr(3), wantPage: 3, wantOffset: 40},
		{name: "far beyond results", rawPage: intPtr(1000), wantPage: 1000, wantOffset: 19980},
		// zero and negative pages are clamped so the engine never sees a negative offset
		{name: "zero", rawPage: intPtr(0), wantPage: 1, wantOffset: 0},
		{name: "negative", rawPage: intPtr(-2), wantPage: 1, wantOffset: 0},
		{name: "max int", rawPage: intPtr(math.MaxInt), wantPage: math.MaxInt / 20, wantOffset: (math.MaxInt/20 - 1) * 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ResolveWindow(nil, tt.rawPage)

			assert.Equal(t, tt.wantPage, w.Page)
			assert.Equal(t, tt.wantOffset, w.Offset)
			assert.Equal(t, (w.Page-1)*w.Size, w.Offset)
		})
	}
}

func TestResolveWindow_OffsetUsesResolvedLimit(t *testing.T) {
	w := ResolveWindow(intPtr(50), intPtr(3))

	assert.Equal(t, Window{Limit: 50, Page: 3, Size: 50, Offset: 100}, w)
}

func TestParseOptionalInt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{name: "empty", raw: "", want: nil},
		{name: "blank", raw: "   ", want: nil},
		{name: "number", raw: "42", want: intPtr(42)},
		{name: "padded", raw: " 7 ", want: intPtr(7)},
		{name: "negative", raw: "-5", want: intPtr(-5)},
		{name: "not a number", raw: "abc", want: nil},
		{name: "plus sign", raw: "+3", want: intPtr(3)},
		{name: "float", raw: "2.5", want: intPtr(2)},
		{name: "trailing text", raw: "30abc", want: intPtr(30)},
		{name: "sign only", raw: "-", want: nil},
		{name: "leading text", raw: "abc30", want: nil},
		{name: "too large", raw: "99999999999999999999999", want: intPtr(math.MaxInt)},
		{name: "too small", raw: "-99999999999999999999999", want: intPtr(math.MinInt)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOptionalInt(tt.raw))
		})
	}
}

func TestResolveWindow_HugePageKeepsOffsetPositive(t *testing.T) {
	for _, limit := range []int{1, 7, 20, 99} {
		w := ResolveWindow(intPtr(limit), intPtr(math.MaxInt))

		assert.Positive(t, w.Offset)
		assert.Equal(t, (w.Page-1)*w.Size, w.Offset)
		assert.LessOrEqual(t, w.Offset, math.MaxInt-w.Size)
	}
}
