package rcc

import "unicode/utf16"

// qtHash is Qt's qt_hash over UTF-16 code units, used to order siblings
func qtHash(name string) uint32 {
	var h uint32
	for _, c := range utf16.Encode([]rune(name)) {
		h = (h << 4) + uint32(c)
		h ^= (h & 0xf0000000) >> 23
		h &= 0x0fffffff
	}
	return h
}
