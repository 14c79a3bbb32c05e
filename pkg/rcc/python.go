package rcc

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/arthur-debert/iconpack/pkg/errors"
)

// DefaultImportLine is the binding import a Qt 6 compiler emits
const DefaultImportLine = "from PySide6 import QtCore"

const bytesPerLine = 16

var (
	tableStart = regexp.MustCompile(`(?m)^(qt_resource_(?:data|name|struct))\s*=\s*b(["'])`)
	versionArg = regexp.MustCompile(`qRegisterResourceData\(\s*(0[xX][0-9a-fA-F]+|\d+)\s*,`)
)

// RenderPython writes tables as a Python resource module that registers
// itself on import
func RenderPython(w io.Writer, t Tables, importLine, generator string) error {
	var buf bytes.Buffer

	buf.WriteString("# Resource object code (Python 3)\n")
	buf.WriteString("# Created by: object code\n")
	fmt.Fprintf(&buf, "# Created by: %s\n", generator)
	buf.WriteString("# WARNING! All changes made in this file will be lost!\n\n")
	buf.WriteString(importLine)
	buf.WriteString("\n\n")

	writeLiteral(&buf, "qt_resource_data", t.Data)
	writeLiteral(&buf, "qt_resource_name", t.Names)
	writeLiteral(&buf, "qt_resource_struct", t.Struct)

	args := fmt.Sprintf("0x%02x, qt_resource_struct, qt_resource_name, qt_resource_data", t.Version)
	fmt.Fprintf(&buf, "def qInitResources():\n    QtCore.qRegisterResourceData(%s)\n\n", args)
	fmt.Fprintf(&buf, "def qCleanupResources():\n    QtCore.qUnregisterResourceData(%s)\n\n", args)
	buf.WriteString("qInitResources()\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func writeLiteral(buf *bytes.Buffer, name string, data []byte) {
	buf.WriteString(name)
	buf.WriteString(" = b\"\\\n")
	for i := 0; i < len(data); i += bytesPerLine {
		end := min(i+bytesPerLine, len(data))
		for _, b := range data[i:end] {
			fmt.Fprintf(buf, "\\x%02x", b)
		}
		buf.WriteString("\\\n")
	}
	buf.WriteString("\"\n\n")
}

// ParsePython extracts the tables and format version from a Python resource
// module. Only the three byte literals and the registration call are read;
// the rest of the module, including its imports, is ignored.
func ParsePython(src []byte) (Tables, error) {
	t := Tables{}

	m := versionArg.FindSubmatch(src)
	if m == nil {
		return t, errors.New(errors.ErrBundleFormat, "no qRegisterResourceData call found")
	}
	v, err := strconv.ParseInt(string(m[1]), 0, 32)
	if err != nil {
		return t, errors.Wrap(err, errors.ErrBundleFormat, "invalid resource format version")
	}
	t.Version = int(v)

	found := map[string]bool{}
	for _, loc := range tableStart.FindAllSubmatchIndex(src, -1) {
		name := string(src[loc[2]:loc[3]])
		quote := src[loc[4]]
		data, err := decodeBytesLiteral(src[loc[1]:], quote)
		if err != nil {
			return t, errors.Wrapf(err, errors.ErrBundleFormat, "decoding %s", name)
		}
		switch name {
		case "qt_resource_data":
			t.Data = data
		case "qt_resource_name":
			t.Names = data
		case "qt_resource_struct":
			t.Struct = data
		}
		found[name] = true
	}

	for _, name := range []string{"qt_resource_data", "qt_resource_name", "qt_resource_struct"} {
		if !found[name] {
			return t, errors.Newf(errors.ErrBundleFormat, "%s literal not found", name)
		}
	}
	return t, nil
}

// decodeBytesLiteral decodes the body of a Python bytes literal up to its
// closing quote
func decodeBytesLiteral(src []byte, quote byte) ([]byte, error) {
	out := make([]byte, 0, len(src)/4)
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == quote:
			return out, nil
		case c == '\n':
			return nil, errors.New(errors.ErrBundleFormat, "unterminated bytes literal")
		case c != '\\':
			out = append(out, c)
			continue
		}

		i++
		if i >= len(src) {
			break
		}
		switch e := src[i]; e {
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
		case 'x':
			if i+2 >= len(src) {
				return nil, errors.New(errors.ErrBundleFormat, "truncated \\x escape")
			}
			b, err := strconv.ParseUint(string(src[i+1:i+3]), 16, 8)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrBundleFormat, "invalid \\x escape")
			}
			out = append(out, byte(b))
			i += 2
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'a':
			out = append(out, '\a')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'v':
			out = append(out, '\v')
		case '\\', '\'', '"':
			out = append(out, e)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(src) && j < i+3 && src[j] >= '0' && src[j] <= '7' {
				j++
			}
			b, err := strconv.ParseUint(string(src[i:j]), 8, 16)
			if err != nil || b > 0xff {
				return nil, errors.New(errors.ErrBundleFormat, "invalid octal escape")
			}
			out = append(out, byte(b))
			i = j - 1
		default:
			// unknown escapes are kept verbatim
			out = append(out, '\\', e)
		}
	}
	return nil, errors.New(errors.ErrBundleFormat, "unterminated bytes literal")
}
