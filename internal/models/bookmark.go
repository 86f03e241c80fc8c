package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// NodeKind represents the kind of a bookmark tree node
type NodeKind int

const (
	KindOther NodeKind = iota
	KindFolder
	KindURL
)

// Values of the "type" discriminator
const (
	TypeFolder = "folder"
	TypeURL    = "url"
)

// Field names with a fixed meaning
const (
	FieldName         = "name"
	FieldURL          = "url"
	FieldDateAdded    = "date_added"
	FieldDateModified = "date_modified"
	FieldPath         = "path"
	FieldType         = "type"
	FieldChildren     = "children"
)

const (
	DefaultFolderName   = "Unnamed Folder"
	DefaultBookmarkName = "Unnamed Bookmark"
)

// Known top-level roots, in traversal order
const (
	RootBookmarkBar = "bookmark_bar"
	RootOther       = "other"
	RootSynced      = "synced"
)

// RootKeys lists the recognized roots in the order they are collected.
var RootKeys = []string{RootBookmarkBar, RootOther, RootSynced}

// Node is a single entry of a bookmark tree.
// Fields holds every key of the source entry except "children", values untouched.
type Node struct {
	Fields   map[string]any
	Children []*Node
}

// NewFolder creates a folder node
func NewFolder(name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{
		Fields:   map[string]any{FieldType: TypeFolder, FieldName: name},
		Children: children,
	}
}

// NewURL creates a url node carrying the given fields
func NewURL(fields map[string]any) *Node {
	n := &Node{Fields: make(map[string]any, len(fields)+1)}
	for k, v := range fields {
		n.Fields[k] = v
	}
	n.Fields[FieldType] = TypeURL
	return n
}

// Kind resolves the node variant from its "type" field.
func (n *Node) Kind() NodeKind {
	if n == nil {
		return KindOther
	}
	typ, _ := n.Fields[FieldType].(string)
	switch typ {
	case TypeFolder:
		return KindFolder
	case TypeURL:
		return KindURL
	default:
		return KindOther
	}
}

// StringOr returns the rendered value of key, or def when the key is absent.
func (n *Node) StringOr(key, def string) string {
	v, ok := n.Fields[key]
	if !ok {
		return def
	}
	return RenderValue(v)
}

// IsEmpty reports whether the node carries no keys at all.
func (n *Node) IsEmpty() bool {
	return n == nil || (len(n.Fields) == 0 && n.Children == nil)
}

// Add appends children to a folder node
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// UnmarshalJSON decodes an arbitrary JSON object into a node.
// Numbers keep their literal text. Non-object children are ignored.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.Fields = make(map[string]any, len(raw))
	n.Children = nil
	for key, msg := range raw {
		if key == FieldChildren {
			children, err := decodeChildren(msg)
			if err != nil {
				return err
			}
			n.Children = children
			continue
		}
		v, err := decodeValue(msg)
		if err != nil {
			return err
		}
		n.Fields[key] = v
	}
	return nil
}

func decodeChildren(msg json.RawMessage) ([]*Node, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		// children that are not a list hold nothing to traverse
		return []*Node{}, nil
	}

	children := make([]*Node, 0, len(items))
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		child := &Node{}
		if err := json.Unmarshal(item, child); err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func decodeValue(msg json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func isObject(msg json.RawMessage) bool {
	trimmed := bytes.TrimSpace(msg)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Document is a parsed bookmark file.
type Document struct {
	Roots map[string]*Node
}

// Root returns a root node, or nil when it is missing or empty
func (d *Document) Root(key string) *Node {
	if d == nil {
		return nil
	}
	root := d.Roots[key]
	if root.IsEmpty() {
		return nil
	}
	return root
}

// UnmarshalJSON decodes the top-level object and its "roots" mapping.
// Roots that are not objects are treated as missing.
func (d *Document) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}

	d.Roots = map[string]*Node{}
	rootsMsg, ok := top["roots"]
	if !ok || !isObject(rootsMsg) {
		return nil
	}

	var roots map[string]json.RawMessage
	if err := json.Unmarshal(rootsMsg, &roots); err != nil {
		return err
	}
	for key, msg := range roots {
		if !isObject(msg) {
			continue
		}
		root := &Node{}
		if err := json.Unmarshal(msg, root); err != nil {
			return err
		}
		d.Roots[key] = root
	}
	return nil
}

// Record is one flattened url entry with its folder path.
type Record struct {
	Name         string
	URL          string
	DateAdded    string
	DateModified string
	Path         string
	// Extra holds every other key of the source entry, values untouched
	Extra map[string]any
}

// IsRequiredField reports whether key is one of the fixed record columns
func IsRequiredField(key string) bool {
	switch key {
	case FieldName, FieldURL, FieldDateAdded, FieldDateModified, FieldPath:
		return true
	}
	return false
}

// Get returns the string form of a column value
func (r *Record) Get(key string) (string, bool) {
	switch key {
	case FieldName:
		return r.Name, true
	case FieldURL:
		return r.URL, true
	case FieldDateAdded:
		return r.DateAdded, true
	case FieldDateModified:
		return r.DateModified, true
	case FieldPath:
		return r.Path, true
	}
	v, ok := r.Extra[key]
	if !ok {
		return "", false
	}
	return RenderValue(v), true
}

// Set replaces a column value, adding an extra column when key is not a fixed one.
func (r *Record) Set(key, value string) {
	switch key {
	case FieldName:
		r.Name = value
	case FieldURL:
		r.URL = value
	case FieldDateAdded:
		r.DateAdded = value
	case FieldDateModified:
		r.DateModified = value
	case FieldPath:
		r.Path = value
	default:
		if r.Extra == nil {
			r.Extra = map[string]any{}
		}
		r.Extra[key] = value
	}
}

// Keys returns the column names of the record, fixed columns first.
func (r *Record) Keys() []string {
	keys := []string{FieldName, FieldURL, FieldDateAdded, FieldDateModified, FieldPath}
	extra := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
