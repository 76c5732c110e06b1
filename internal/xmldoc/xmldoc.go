// Package xmldoc wraps the XML library behind the small set of tree
// operations the swap engine needs. The wrapper exists to pin down the
// round-trip guarantee: attribute order, namespace-prefix declarations and
// character data come back out exactly as they were read, so untouched
// parts of a save serialize byte-for-byte.
package xmldoc

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// Element is the mutable tree node callers work with.
type Element = etree.Element

var (
	ErrMalformedDocument = errors.New("save is not a well-formed save document")
	ErrNotFound          = errors.New("element not found")
	ErrMultipleMatches   = errors.New("multiple elements matched")
)

// RootTag is the tag every save document must have at its root.
const RootTag = "SaveGame"

// Document is a parsed save file.
type Document struct {
	doc *etree.Document
}

// Parse reads a save document from raw bytes. The root element must be
// <SaveGame>; anything else is rejected up front rather than discovered
// halfway through a swap.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}
	if root.Tag != RootTag {
		return nil, fmt.Errorf("%w: root element is <%s>, not <%s>", ErrMalformedDocument, root.Tag, RootTag)
	}
	return &Document{doc: doc}, nil
}

// Root returns the <SaveGame> element.
func (d *Document) Root() *Element {
	return d.doc.Root()
}

// Serialize writes the document back to bytes.
func (d *Document) Serialize() ([]byte, error) {
	return d.doc.WriteToBytes()
}

// Indent reformats the whole document with the given indent width.
// This deliberately breaks byte fidelity, so it is opt-in for callers
// that want a human-readable file.
func (d *Document) Indent(spaces int) {
	d.doc.Indent(spaces)
}

// FindOne locates exactly one element under parent by path expression.
// Zero matches returns ErrNotFound, more than one ErrMultipleMatches.
func FindOne(parent *Element, path string) (*Element, error) {
	matches := parent.FindElements(path)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q in <%s>", ErrNotFound, path, parent.Tag)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %d matches for %q in <%s>", ErrMultipleMatches, len(matches), path, parent.Tag)
	}
}

// FindAll returns every element under parent matching the path expression,
// in document order.
func FindAll(parent *Element, path string) []*Element {
	return parent.FindElements(path)
}

// Children returns the direct child elements of parent carrying the given tag,
// in document order.
func Children(parent *Element, tag string) []*Element {
	return parent.SelectElements(tag)
}

// Text returns the character data of the named direct child, or "" if the
// child does not exist.
func Text(parent *Element, tag string) string {
	child := parent.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}

// Clone deep-copies an element and its whole subtree.
func Clone(el *Element) *Element {
	return el.Copy()
}

// IndexOf reports the position of el within its parent's child list.
func IndexOf(el *Element) int {
	return el.Index()
}

// Detach removes el from parent, leaving the remaining siblings in order.
func Detach(parent, el *Element) {
	parent.RemoveChild(el)
}

// Append adds el as the last child of parent.
func Append(parent, el *Element) {
	parent.AddChild(el)
}

// InsertAt adds el as a child of parent at the given position, as reported
// by IndexOf. Siblings at or after the position shift right.
func InsertAt(parent *Element, index int, el *Element) {
	parent.InsertChildAt(index, el)
}

// SerializeElement renders a single element subtree on its own. Used for
// comparing subtrees; the document's own serialization is Serialize.
func SerializeElement(el *Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	return doc.WriteToString()
}
