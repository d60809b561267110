package parallel

import "testing"

// =============================================================================
// Unit Geometry Tests
// =============================================================================

func TestBlockCount(t *testing.T) {
	tests := []struct {
		size, blockSize, want int
	}{
		{1, 2, 1},
		{2, 2, 1},
		{3, 2, 2},
		{17, 2, 9},
		{256, 2, 128},
		{17, 5, 4},
		{0, 2, 0},
		{10, 0, 0},
	}

	for _, tt := range tests {
		if got := BlockCount(tt.size, tt.blockSize); got != tt.want {
			t.Errorf("BlockCount(%d, %d) = %d, want %d", tt.size, tt.blockSize, got, tt.want)
		}
	}
}

func TestItemCount(t *testing.T) {
	tests := []struct {
		kind UnitKind
		size int
		want int
	}{
		{UnitRow, 17, 17},
		{UnitPixel, 17, 289},
		{UnitBlock, 17, 9},
		{UnitRow, 1, 1},
		{UnitPixel, 1, 1},
		{UnitBlock, 1, 1},
	}

	for _, tt := range tests {
		if got := ItemCount(tt.kind, tt.size, DefaultBlockSize); got != tt.want {
			t.Errorf("ItemCount(%s, %d) = %d, want %d", tt.kind, tt.size, got, tt.want)
		}
	}
}

func TestUnit_RowsShortLastBlock(t *testing.T) {
	u := Unit{Kind: UnitBlock, Index: 8}
	start, end := u.Rows(17, 2)
	if start != 16 || end != 17 {
		t.Errorf("Rows() = [%d, %d), want [16, 17)", start, end)
	}
	if got := u.Pixels(17, 2); got != 17 {
		t.Errorf("Pixels() = %d, want 17", got)
	}
}

func TestUnit_EachRow(t *testing.T) {
	var got [][2]int
	Unit{Kind: UnitRow, Index: 2}.Each(3, 2, func(col, row int) {
		got = append(got, [2]int{col, row})
	})

	want := [][2]int{{0, 2}, {1, 2}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("Each visited %d pixels, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUnit_EachPixel(t *testing.T) {
	calls := 0
	Unit{Kind: UnitPixel, Index: 7}.Each(3, 2, func(col, row int) {
		calls++
		if col != 1 || row != 2 {
			t.Errorf("pixel 7 of 3x3 = (%d, %d), want (1, 2)", col, row)
		}
	})
	if calls != 1 {
		t.Errorf("Each called fn %d times, want 1", calls)
	}
}

func TestUnit_EachBlockSmallerThanBlockSize(t *testing.T) {
	calls := 0
	Unit{Kind: UnitBlock, Index: 0}.Each(1, 2, func(col, row int) {
		calls++
		if col != 0 || row != 0 {
			t.Errorf("pixel = (%d, %d), want (0, 0)", col, row)
		}
	})
	if calls != 1 {
		t.Errorf("Each called fn %d times, want 1", calls)
	}
}
