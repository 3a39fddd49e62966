package game

import "testing"

func TestRowCodecRoundTrip(t *testing.T) {
	for v := 0; v < 1<<16; v++ {
		id := uint16(v)
		row := RowFromU16(id)
		if RowToU16(row) != id {
			t.Fatalf("RowToU16(RowFromU16(%#04x)) mismatch", id)
		}
		if got := RowFromU16Rev(RowToU16Rev(row)); got != row {
			t.Fatalf("reversed codec round trip: %v -> %v", row, got)
		}
		if RowToU16Rev(row) != RowToU16(ReverseLine(row)) {
			t.Fatalf("reversed encoding of %v is not the encoding of the mirrored row", row)
		}
	}
}

func TestRowToU16_BigEndianNibbles(t *testing.T) {
	if got := RowToU16([4]uint8{2, 2, 1, 1}); got != 0x2211 {
		t.Fatalf("RowToU16 = %#04x, want 0x2211", got)
	}
	if got := RowToU16Rev([4]uint8{2, 2, 1, 1}); got != 0x1122 {
		t.Fatalf("RowToU16Rev = %#04x, want 0x1122", got)
	}
}

func TestBoardID(t *testing.T) {
	b := FromCells([4][4]uint8{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 0},
	})
	if got := b.ID(); got != 0x123456789ABCDEF0 {
		t.Fatalf("ID = %#016x", got)
	}
	if back := FromID(b.ID()); back.Cells != b.Cells {
		t.Fatalf("FromID round trip mismatch:\n%s", dumpBoard(back))
	}
}
