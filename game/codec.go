package game

// Rows pack into 16 bits with the first cell in the high nibble. The reversed
// codec packs the last cell high, so a table built for leftward slides also
// serves rightward ones.

func RowToU16(row [Size]uint8) uint16 {
	return uint16(row[0])<<12 | uint16(row[1])<<8 | uint16(row[2])<<4 | uint16(row[3])
}

func RowFromU16(v uint16) [Size]uint8 {
	return [Size]uint8{uint8(v >> 12 & 0xF), uint8(v >> 8 & 0xF), uint8(v >> 4 & 0xF), uint8(v & 0xF)}
}

func RowToU16Rev(row [Size]uint8) uint16 {
	return uint16(row[3])<<12 | uint16(row[2])<<8 | uint16(row[1])<<4 | uint16(row[0])
}

func RowFromU16Rev(v uint16) [Size]uint8 {
	return [Size]uint8{uint8(v & 0xF), uint8(v >> 4 & 0xF), uint8(v >> 8 & 0xF), uint8(v >> 12 & 0xF)}
}

// ID packs the whole grid into 64 bits, row 0 in the high 16 bits. Score and
// state are not part of the id.
func (b *Board) ID() uint64 {
	var id uint64
	for r := 0; r < Size; r++ {
		id = id<<16 | uint64(RowToU16(b.Cells[r]))
	}
	return id
}

// FromID unpacks an id produced by Board.ID.
func FromID(id uint64) Board {
	var b Board
	for r := Size - 1; r >= 0; r-- {
		b.Cells[r] = RowFromU16(uint16(id))
		id >>= 16
	}
	return b
}
