package config

// Value is a node in a generic configuration tree: either a string leaf, a
// table of named children, or both (a key that was assigned a value and later
// nested under).
//
// All accessors tolerate a nil receiver, so lookups chain without
// intermediate checks:
//
//	cfg.Get("default").Get("region").String()
type Value struct {
	text     string
	children map[string]*Value
}

// Get returns the child stored under key, or nil if v is nil or has no such
// child.
func (v *Value) Get(key string) *Value {
	if v == nil {
		return nil
	}
	return v.children[key]
}

// String returns the node's text, or "" for nil nodes and pure tables.
func (v *Value) String() string {
	if v == nil {
		return ""
	}
	return v.text
}

// Keys returns the names of the node's children, in no particular order.
func (v *Value) Keys() []string {
	if v == nil {
		return nil
	}
	keys := make([]string, 0, len(v.children))
	for k := range v.children {
		keys = append(keys, k)
	}
	return keys
}

func (v *Value) setChild(key string, child *Value) {
	if v.children == nil {
		v.children = make(map[string]*Value)
	}
	v.children[key] = child
}
