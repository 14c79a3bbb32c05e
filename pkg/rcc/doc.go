// Package rcc reads and writes compiled Qt resource bundles.
//
// A bundle is three byte tables: a tree of fixed-size nodes (struct), a
// pool of UTF-16 names with their qt_hash (names) and length-prefixed
// payloads (data). Format 1 nodes are 14 bytes; formats 2 and 3 append a
// 64-bit modification time. Payload flag 0x01 marks zlib (qCompress framing)
// and 0x04 marks zstd.
//
// The tables are carried inside a generated Python module, the artifact the
// toolkit's resource compiler emits; RenderPython and ParsePython convert
// between the two.
package rcc
