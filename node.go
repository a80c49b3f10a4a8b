package mdhtml

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLeafValue reports a leaf rendered without a value.
	ErrLeafValue = errors.New("leaf node has no value")
	// ErrContainerTag reports a container rendered without a tag.
	ErrContainerTag = errors.New("container node has no tag")
	// ErrContainerChildren reports a container rendered without children.
	ErrContainerChildren = errors.New("container node has no children")
)

// StructureError reports a node that violates the tree contract. It is
// returned when the node is rendered, not when it is built.
type StructureError struct {
	Tag string
	Err error
}

func (e *StructureError) Error() string {
	if e.Tag == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("<%s>: %v", e.Tag, e.Err)
}

func (e *StructureError) Unwrap() error { return e.Err }

// Attr is an HTML attribute. Attributes render in slice order.
type Attr struct {
	Key string
	Val string
}

// Node is either a *Leaf or a *Container.
type Node interface {
	// HTML renders the node and its descendants.
	HTML() (string, error)
	writeHTML(b *strings.Builder) error
}

var voidElements = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
}

// Leaf is a node holding a single text value. An untagged leaf renders as
// bare text.
type Leaf struct {
	Tag   string
	Attrs []Attr

	value    string
	hasValue bool
}

// NewLeaf returns a leaf with a value.
func NewLeaf(tag, value string, attrs ...Attr) *Leaf {
	return &Leaf{Tag: tag, Attrs: attrs, value: value, hasValue: true}
}

// Text returns an untagged leaf.
func Text(value string) *Leaf {
	return NewLeaf("", value)
}

// Value returns the leaf value and whether one was set.
func (l *Leaf) Value() (string, bool) { return l.value, l.hasValue }

// HTML renders the leaf.
func (l *Leaf) HTML() (string, error) {
	var b strings.Builder
	if err := l.writeHTML(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (l *Leaf) writeHTML(b *strings.Builder) error {
	if !l.hasValue {
		return &StructureError{Tag: l.Tag, Err: ErrLeafValue}
	}
	if l.Tag == "" {
		b.WriteString(l.value)
		return nil
	}
	writeOpenTag(b, l.Tag, l.Attrs)
	if voidElements[l.Tag] {
		return nil
	}
	b.WriteString(l.value)
	writeCloseTag(b, l.Tag)
	return nil
}

// Container is a tagged node with at least one child.
type Container struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

// NewContainer returns a container node.
func NewContainer(tag string, children ...Node) *Container {
	return &Container{Tag: tag, Children: children}
}

// Append adds children to the container.
func (c *Container) Append(children ...Node) {
	c.Children = append(c.Children, children...)
}

// HTML renders the container and its descendants.
func (c *Container) HTML() (string, error) {
	var b strings.Builder
	if err := c.writeHTML(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// InnerHTML renders the children without the container tag.
func (c *Container) InnerHTML() (string, error) {
	var b strings.Builder
	for _, child := range c.Children {
		if err := child.writeHTML(&b); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func (c *Container) writeHTML(b *strings.Builder) error {
	if c.Tag == "" {
		return &StructureError{Err: ErrContainerTag}
	}
	if len(c.Children) == 0 {
		return &StructureError{Tag: c.Tag, Err: ErrContainerChildren}
	}
	writeOpenTag(b, c.Tag, c.Attrs)
	for _, child := range c.Children {
		if err := child.writeHTML(b); err != nil {
			return err
		}
	}
	writeCloseTag(b, c.Tag)
	return nil
}

// MustHTML renders n and panics on a structural error.
func MustHTML(n Node) string {
	out, err := n.HTML()
	if err != nil {
		panic(fmt.Sprintf("mdhtml: %v", err))
	}
	return out
}

func writeOpenTag(b *strings.Builder, tag string, attrs []Attr) {
	b.WriteByte('<')
	b.WriteString(tag)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(a.Val)
		b.WriteByte('"')
	}
	b.WriteByte('>')
}

func writeCloseTag(b *strings.Builder, tag string) {
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
}
