package customsdoc

// Kind distinguishes element nodes from text nodes.
type Kind int

const (
	KindElement Kind = iota
	KindText
)

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of a document tree. Element nodes carry a name,
// attributes and children; text nodes carry only Text.
type Node struct {
	Kind     Kind
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Element returns an element node. Nil children are skipped so optional
// blocks can be passed inline.
func Element(name string, children ...*Node) *Node {
	n := &Node{Kind: KindElement, Name: name}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// TextNode returns a character data node.
func TextNode(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// Leaf returns an element holding a single text node. An empty value still
// produces the element so the schema shape is stable.
func Leaf(name, value string) *Node {
	return Element(name, TextNode(value))
}

// WithAttr appends an attribute and returns n for chaining.
func (n *Node) WithAttr(name, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == KindElement && c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child element with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == KindElement && c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Find follows a path of element names from n.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, name := range path {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Value returns the concatenated text of n's direct text children.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	if n.Kind == KindText {
		return n.Text
	}
	var s string
	for _, c := range n.Children {
		if c.Kind == KindText {
			s += c.Text
		}
	}
	return s
}
