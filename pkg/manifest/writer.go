package manifest

import (
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/beevik/etree"
)

const (
	rootTag     = "RCC"
	resourceTag = "qresource"
	fileTag     = "file"
	docType     = "DOCTYPE RCC"
	rccVersion  = "1.0"
)

// Entry is one <file> element of a manifest
type Entry struct {
	// File is the source path relative to the manifest directory
	File string
	// Alias replaces File as the registered name when set
	Alias string
	// Prefix is the enclosing qresource prefix, "/" when unset
	Prefix string
}

// ResourcePath returns the path the compiled bundle registers for the entry
func (e Entry) ResourcePath() string {
	name := e.File
	if e.Alias != "" {
		name = e.Alias
	}
	return path.Join("/", e.Prefix, name)
}

// Write serializes files into a manifest document. Backslash separators are
// normalized to forward slashes; identical input yields identical bytes.
func Write(w io.Writer, files []string) error {
	doc := etree.NewDocument()
	doc.CreateDirective(docType)

	root := doc.CreateElement(rootTag)
	root.CreateAttr("version", rccVersion)

	res := root.CreateElement(resourceTag)
	for _, f := range files {
		res.CreateElement(fileTag).SetText(strings.ReplaceAll(f, "\\", "/"))
	}

	doc.Indent(0)
	if _, err := doc.WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write manifest")
	}
	return nil
}

// WriteFile writes a manifest document to path
func WriteFile(filename string, files []string) error {
	var buf bytes.Buffer
	if err := Write(&buf, files); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create manifest directory").
			WithDetail("path", filename)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write manifest").
			WithDetail("path", filename)
	}
	return nil
}

// Read parses a manifest document
func Read(r io.Reader) ([]Entry, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse manifest")
	}
	return entries(doc)
}

// ReadFile parses the manifest document at filename
func ReadFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "manifest does not exist").
				WithDetail("path", filename)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to open manifest").
			WithDetail("path", filename)
	}
	defer func() { _ = f.Close() }()

	out, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse manifest").
			WithDetail("path", filename)
	}
	return out, nil
}

func entries(doc *etree.Document) ([]Entry, error) {
	root := doc.SelectElement(rootTag)
	if root == nil {
		return nil, errors.Newf(errors.ErrManifestParse, "manifest has no <%s> root element", rootTag)
	}

	var out []Entry
	for _, res := range root.SelectElements(resourceTag) {
		prefix := res.SelectAttrValue("prefix", "/")
		for _, f := range res.SelectElements(fileTag) {
			file := strings.TrimSpace(f.Text())
			if file == "" {
				continue
			}
			out = append(out, Entry{
				File:   file,
				Alias:  f.SelectAttrValue("alias", ""),
				Prefix: prefix,
			})
		}
	}
	return out, nil
}

// Prune copies the manifest at src to dst, keeping only the entries keep
// accepts. Prefixes, aliases and order of the kept entries are preserved.
func Prune(src, dst string, keep func(Entry) bool) (kept, dropped []Entry, err error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(src); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse manifest").
			WithDetail("path", src)
	}
	root := doc.SelectElement(rootTag)
	if root == nil {
		return nil, nil, errors.Newf(errors.ErrManifestParse, "manifest has no <%s> root element", rootTag).
			WithDetail("path", src)
	}

	for _, res := range root.SelectElements(resourceTag) {
		prefix := res.SelectAttrValue("prefix", "/")
		for _, f := range res.SelectElements(fileTag) {
			e := Entry{
				File:   strings.TrimSpace(f.Text()),
				Alias:  f.SelectAttrValue("alias", ""),
				Prefix: prefix,
			}
			if e.File != "" && keep(e) {
				kept = append(kept, e)
				continue
			}
			if e.File != "" {
				dropped = append(dropped, e)
			}
			res.RemoveChild(f)
		}
	}

	doc.Indent(0)
	if err := doc.WriteToFile(dst); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrFileWrite, "failed to write manifest").
			WithDetail("path", dst)
	}
	return kept, dropped, nil
}
