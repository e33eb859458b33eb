package bits

import (
	"bytes"
	"math/bits"
)

func BitCount(count int) uint {
	return 8 * uint(count)
}

func ByteCount(count uint) int {
	return int((count + 7) / 8)
}

func Len8(i uint8) int {
	return bits.Len8(i)
}

func Len32(i int32) int {
	return bits.Len32(uint32(i))
}

func Len64(i int64) int {
	return bits.Len64(uint64(i))
}

// CountByte returns the number of occurrences of value in data.
func CountByte(data []byte, value byte) int {
	return bytes.Count(data, []byte{value})
}
