package rcc

import (
	"bytes"
	"encoding/binary"
	"io"
	"path"
	"sort"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Node flags
const (
	flagCompressed     = 0x01
	flagDirectory      = 0x02
	flagCompressedZstd = 0x04
)

const (
	// DefaultVersion is the format written by Qt 6 resource compilers
	DefaultVersion = 3

	// DefaultThreshold is the compression ratio, in percent of the original
	// size, a payload must reach before it is stored compressed
	DefaultThreshold = 70

	languageC    = 1
	anyTerritory = 0
	nodeSizeV1   = 14
	nodeSizeV2   = 22
	maxDepth     = 256
)

// Compression selects how payloads are stored
type Compression int

const (
	CompressNone Compression = iota
	CompressZlib
	CompressZstd
)

// Tables holds the three byte tables of a compiled bundle
type Tables struct {
	Version int
	Struct  []byte
	Names   []byte
	Data    []byte
}

// File is one entry to encode
type File struct {
	// Path is the resource path, e.g. /icons/home.svg
	Path    string
	Data    []byte
	ModTime time.Time
}

// Options control encoding
type Options struct {
	Version     int
	Compression Compression
	Threshold   int
}

type node struct {
	name       string
	dir        bool
	children   map[string]*node
	data       []byte
	modTime    time.Time
	flags      uint16
	nameOffset uint32
	dataOffset uint32
	childIndex uint32
}

// Encode builds bundle tables for files. Output depends only on the input
// set, not on its order.
func Encode(files []File, opts Options) (Tables, error) {
	if opts.Version == 0 {
		opts.Version = DefaultVersion
	}
	if opts.Version < 1 || opts.Version > 3 {
		return Tables{}, errors.Newf(errors.ErrInvalidInput, "unsupported resource format version %d", opts.Version)
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Compression == CompressZstd && opts.Version < 3 {
		return Tables{}, errors.New(errors.ErrInvalidInput, "zstd payloads require format version 3")
	}

	root := &node{dir: true, flags: flagDirectory, children: map[string]*node{}}
	for _, f := range files {
		if err := insert(root, f); err != nil {
			return Tables{}, err
		}
	}

	// Flatten breadth first: the children of each directory are contiguous
	// and ordered by hash, which is what lookups in the runtime rely on.
	order := []*node{root}
	for i := 0; i < len(order); i++ {
		n := order[i]
		if !n.dir {
			continue
		}
		n.childIndex = uint32(len(order))
		order = append(order, sortedChildren(n)...)
	}

	var names, data bytes.Buffer
	nameOffsets := map[string]uint32{}
	for _, n := range order[1:] {
		off, ok := nameOffsets[n.name]
		if !ok {
			off = uint32(names.Len())
			nameOffsets[n.name] = off
			writeName(&names, n.name)
		}
		n.nameOffset = off

		if n.dir {
			continue
		}
		payload, flags, err := compress(n.data, opts)
		if err != nil {
			return Tables{}, err
		}
		n.flags |= flags
		n.dataOffset = uint32(data.Len())
		writeU32(&data, uint32(len(payload)))
		data.Write(payload)
	}

	var st bytes.Buffer
	for _, n := range order {
		writeU32(&st, n.nameOffset)
		writeU16(&st, n.flags)
		if n.dir {
			writeU32(&st, uint32(len(n.children)))
			writeU32(&st, n.childIndex)
		} else {
			writeU16(&st, anyTerritory)
			writeU16(&st, languageC)
			writeU32(&st, n.dataOffset)
		}
		if opts.Version >= 2 {
			var mod uint64
			if !n.dir && !n.modTime.IsZero() {
				mod = uint64(n.modTime.UnixMilli())
			}
			writeU64(&st, mod)
		}
	}

	return Tables{Version: opts.Version, Struct: st.Bytes(), Names: names.Bytes(), Data: data.Bytes()}, nil
}

func insert(root *node, f File) error {
	clean := path.Clean("/" + strings.ReplaceAll(f.Path, "\\", "/"))
	if clean == "/" {
		return errors.Newf(errors.ErrInvalidInput, "invalid resource path %q", f.Path)
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	cur := root
	for i, part := range parts {
		last := i == len(parts)-1
		child, exists := cur.children[part]
		switch {
		case exists && last:
			return errors.Newf(errors.ErrAlreadyExists, "duplicate resource path %s", clean)
		case exists && !child.dir:
			return errors.Newf(errors.ErrInvalidInput, "resource path %s descends into a file", clean)
		case exists:
			cur = child
		case last:
			cur.children[part] = &node{name: part, data: f.Data, modTime: f.ModTime}
		default:
			child = &node{name: part, dir: true, flags: flagDirectory, children: map[string]*node{}}
			cur.children[part] = child
			cur = child
		}
	}
	return nil
}

func sortedChildren(n *node) []*node {
	kids := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		kids = append(kids, c)
	}
	sort.Slice(kids, func(i, j int) bool {
		hi, hj := qtHash(kids[i].name), qtHash(kids[j].name)
		if hi != hj {
			return hi < hj
		}
		return kids[i].name < kids[j].name
	})
	return kids
}

func compress(raw []byte, opts Options) ([]byte, uint16, error) {
	switch opts.Compression {
	case CompressZlib:
		var buf bytes.Buffer
		writeU32(&buf, uint32(len(raw)))
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrInternal, "zlib writer")
		}
		if _, err := zw.Write(raw); err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrInternal, "zlib compress")
		}
		if err := zw.Close(); err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrInternal, "zlib compress")
		}
		if worthIt(len(raw), buf.Len(), opts.Threshold) {
			return buf.Bytes(), flagCompressed, nil
		}
	case CompressZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrInternal, "zstd writer")
		}
		out := enc.EncodeAll(raw, nil)
		_ = enc.Close()
		if worthIt(len(raw), len(out), opts.Threshold) {
			return out, flagCompressedZstd, nil
		}
	}
	return raw, 0, nil
}

func worthIt(raw, compressed, threshold int) bool {
	return raw > 0 && compressed*100 < raw*threshold
}

// Decode walks the tables and returns every file keyed by resource path
// (leading slash, no colon), with payloads decompressed.
func Decode(t Tables) (map[string][]byte, error) {
	d, err := newDecoder(t)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte)
	if err := d.walk(0, "", out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

type decoder struct {
	t        Tables
	nodeSize int
	count    int
	visited  int
}

type rawNode struct {
	nameOffset uint32
	flags      uint16
	childCount uint32
	childIndex uint32
	dataOffset uint32
}

func newDecoder(t Tables) (*decoder, error) {
	size := nodeSizeV2
	switch t.Version {
	case 1:
		size = nodeSizeV1
	case 2, 3:
	default:
		return nil, errors.Newf(errors.ErrBundleFormat, "unsupported resource format version %d", t.Version)
	}
	if len(t.Struct) < size || len(t.Struct)%size != 0 {
		return nil, errors.Newf(errors.ErrBundleFormat, "struct table of %d bytes is not a whole number of %d-byte nodes", len(t.Struct), size)
	}
	return &decoder{t: t, nodeSize: size, count: len(t.Struct) / size}, nil
}

func (d *decoder) node(i uint32) (rawNode, error) {
	if int(i) >= d.count {
		return rawNode{}, errors.Newf(errors.ErrBundleFormat, "node index %d out of range (%d nodes)", i, d.count)
	}
	b := d.t.Struct[int(i)*d.nodeSize:]
	n := rawNode{
		nameOffset: binary.BigEndian.Uint32(b[0:4]),
		flags:      binary.BigEndian.Uint16(b[4:6]),
	}
	if n.flags&flagDirectory != 0 {
		n.childCount = binary.BigEndian.Uint32(b[6:10])
		n.childIndex = binary.BigEndian.Uint32(b[10:14])
	} else {
		n.dataOffset = binary.BigEndian.Uint32(b[10:14])
	}
	return n, nil
}

func (d *decoder) walk(i uint32, prefix string, out map[string][]byte, depth int) error {
	d.visited++
	if d.visited > d.count || depth > maxDepth {
		return errors.New(errors.ErrBundleFormat, "resource tree contains a cycle")
	}

	n, err := d.node(i)
	if err != nil {
		return err
	}
	if n.flags&flagDirectory == 0 {
		if i == 0 {
			return errors.New(errors.ErrBundleFormat, "root node is not a directory")
		}
		data, err := d.payload(n)
		if err != nil {
			return errors.Wrapf(err, errors.ErrBundleFormat, "reading %s", prefix)
		}
		out[prefix] = data
		return nil
	}

	if uint64(n.childIndex)+uint64(n.childCount) > uint64(d.count) {
		return errors.Newf(errors.ErrBundleFormat, "children of %q exceed node table", prefix)
	}
	for c := n.childIndex; c < n.childIndex+n.childCount; c++ {
		child, err := d.node(c)
		if err != nil {
			return err
		}
		name, err := d.name(child.nameOffset)
		if err != nil {
			return err
		}
		if err := d.walk(c, prefix+"/"+name, out, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) name(off uint32) (string, error) {
	names := d.t.Names
	if uint64(off)+6 > uint64(len(names)) {
		return "", errors.Newf(errors.ErrBundleFormat, "name offset %d out of range", off)
	}
	length := int(binary.BigEndian.Uint16(names[off : off+2]))
	start := int(off) + 6
	if start+2*length > len(names) {
		return "", errors.Newf(errors.ErrBundleFormat, "name at %d overruns name table", off)
	}
	units := make([]uint16, length)
	for k := range units {
		units[k] = binary.BigEndian.Uint16(names[start+2*k:])
	}
	return string(utf16.Decode(units)), nil
}

func (d *decoder) payload(n rawNode) ([]byte, error) {
	data := d.t.Data
	off := uint64(n.dataOffset)
	if off+4 > uint64(len(data)) {
		return nil, errors.Newf(errors.ErrBundleFormat, "data offset %d out of range", off)
	}
	size := uint64(binary.BigEndian.Uint32(data[off : off+4]))
	if off+4+size > uint64(len(data)) {
		return nil, errors.Newf(errors.ErrBundleFormat, "payload at %d overruns data table", off)
	}
	raw := data[off+4 : off+4+size]

	switch {
	case n.flags&flagCompressed != 0:
		if len(raw) < 4 {
			return nil, errors.New(errors.ErrBundleFormat, "truncated zlib payload")
		}
		expect := binary.BigEndian.Uint32(raw[:4])
		zr, err := zlib.NewReader(bytes.NewReader(raw[4:]))
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrBundleFormat, "zlib payload")
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrBundleFormat, "zlib payload")
		}
		if uint32(len(out)) != expect {
			return nil, errors.Newf(errors.ErrBundleFormat, "zlib payload is %d bytes, header says %d", len(out), expect)
		}
		return out, nil
	case n.flags&flagCompressedZstd != 0:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "zstd reader")
		}
		defer dec.Close()
		out, err := dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrBundleFormat, "zstd payload")
		}
		return out, nil
	default:
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	}
}

func writeName(buf *bytes.Buffer, name string) {
	units := utf16.Encode([]rune(name))
	writeU16(buf, uint16(len(units)))
	writeU32(buf, qtHash(name))
	for _, u := range units {
		writeU16(buf, u)
	}
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}
