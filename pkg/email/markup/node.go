// Package markup defines the intermediate layout tree the renderer emits and
// the compiler contract that turns it into final HTML. The tree serializes
// deterministically, so identical documents always produce identical markup.
package markup

import (
	"strings"
)

// Attr is one element attribute. Attributes keep insertion order so
// serialization stays stable.
type Attr struct {
	Key   string
	Value string
}

// Node is one element or text node in the markup tree. A text node has an
// empty Tag and carries Text; an element node ignores Text.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// NewElement creates an element node.
func NewElement(tag string) *Node {
	return &Node{Tag: tag}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Text: text}
}

// SetAttr appends or replaces an attribute, preserving first-set order.
func (n *Node) SetAttr(key, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
	return n
}

// Attr returns the attribute value for key, or "".
func (n *Node) Attr(key string) string {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Append adds children and returns the node for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// AppendText adds a text child.
func (n *Node) AppendText(text string) *Node {
	return n.Append(NewText(text))
}

// String serializes the subtree. Text content and attribute values are
// escaped here, so the renderer never has to pre-escape.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n.Tag == "" {
		sb.WriteString(EscapeText(n.Text))
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(EscapeAttr(a.Value))
		sb.WriteByte('"')
	}
	if len(n.Children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	for _, c := range n.Children {
		c.write(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeText escapes text content for element bodies.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes an attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
