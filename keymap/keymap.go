// Package keymap implements a trie of key sequences to bound values: a
// node holds a mapping from a single key to a child node, an optional bound
// value, and an "anotherKey" value used when a prefix is itself bound but
// may still be extended by more keys.
package keymap

// Kind discriminates the four shapes a bound value can take.
type Kind int

const (
	// KindNone marks a zero Binding — nothing is bound.
	KindNone Kind = iota
	KindOp
	KindMacro
	KindCallback
	KindSub
)

// Callback is a user-supplied hook invoked directly by the controller; it
// receives nothing and returns nothing interesting to the keymap layer —
// side effects happen through whatever closure state the registrant closed
// over.
type Callback func()

// Binding is the tagged variant bound at a keymap node: an Operation tag, a
// macro replay string, a callback, or a nested KeyMap (more keys may
// follow). Exactly one of the typed accessors is meaningful, selected by
// Kind.
type Binding struct {
	Kind     Kind
	Op       Operation
	Macro    string
	Callback Callback
	Sub      *Map
}

// IsZero reports whether the binding carries nothing.
func (b Binding) IsZero() bool {
	return b.Kind == KindNone
}

// OpBinding wraps an Operation tag.
func OpBinding(op Operation) Binding { return Binding{Kind: KindOp, Op: op} }

// MacroBinding wraps a macro replay string.
func MacroBinding(macro string) Binding { return Binding{Kind: KindMacro, Macro: macro} }

// CallbackBinding wraps a callback.
func CallbackBinding(cb Callback) Binding { return Binding{Kind: KindCallback, Callback: cb} }

// SubBinding wraps a nested KeyMap.
func SubBinding(m *Map) Binding { return Binding{Kind: KindSub, Sub: m} }

// Map is one trie node. The root node of a keymap and every intermediate
// node along a multi-key sequence are both represented by this type.
//
// A node's own "bound" value means "this exact prefix, ending here, is a
// complete sequence." If the node also has children, those children let a
// longer sequence sharing this prefix resolve too; in that situation the
// node's bound value doubles as its anotherKey: this prefix is itself
// bound, but more keys may extend it.
type Map struct {
	children map[rune]*Map
	bound    Binding

	// defaultBinding, when set, is returned by GetBound for any single,
	// otherwise-unbound key — the trie equivalent of readline's range binds
	// for self-insert. A literal trie entry per Unicode code point isn't
	// feasible, so printable-character self-insert is modeled as this
	// root-level fallback instead.
	defaultBinding Binding

	// Name and Generation support log correlation: each keymap.Map the
	// controller installs as the active map carries a name ("emacs",
	// "vi-insert", "vi-move") and a generation id stamped when the keymap
	// is built. re-read-init-file does not rebuild keymaps in this module,
	// so the id stays the one stamped at construction.
	Name       string
	Generation string
}

// New returns an empty keymap node.
func New() *Map {
	return &Map{children: make(map[rune]*Map)}
}

// Bind installs a binding at the end of seq, creating intermediate nodes as
// needed. An empty seq is a no-op.
func (m *Map) Bind(seq []rune, b Binding) {
	if len(seq) == 0 {
		return
	}
	node := m
	for _, k := range seq {
		child, ok := node.children[k]
		if !ok {
			child = New()
			node.children[k] = child
		}
		node = child
	}
	node.bound = b
}

// BindOp is a convenience wrapper for the common case of binding an
// Operation tag.
func (m *Map) BindOp(seq []rune, op Operation) {
	m.Bind(seq, OpBinding(op))
}

// BindString binds seq (given as a string of key codes, one byte/rune per
// key) to b.
func (m *Map) BindString(seq string, b Binding) {
	m.Bind([]rune(seq), b)
}

// BindOpString is BindString for the common Operation case.
func (m *Map) BindOpString(seq string, op Operation) {
	m.Bind([]rune(seq), OpBinding(op))
}

// SetDefault installs the fallback binding returned for any single key that
// has no explicit entry at the root. Used to bind self-insert across the
// printable range without enumerating it.
func (m *Map) SetDefault(b Binding) {
	m.defaultBinding = b
}

// Child returns the child node for key k, if any.
func (m *Map) Child(k rune) (*Map, bool) {
	c, ok := m.children[k]
	return c, ok
}

// HasChildren reports whether more keys can extend the sequence ending at m.
func (m *Map) HasChildren() bool {
	return len(m.children) > 0
}

// AnotherKey returns the binding that terminates exactly at this prefix, for
// use when this node is reached as a Sub (child keymap) binding and the
// controller needs to know whether the prefix itself was a complete,
// immediately-executable sequence.
func (m *Map) AnotherKey() Binding {
	return m.bound
}

// GetBound resolves a pending key sequence against the trie. It returns
// either a zero Binding with ok=false (no node matches at all), a
// bound value (ok=true, a concrete Op/Macro/Callback), or a Sub binding
// (ok=true, KindSub — more keys may extend the sequence; the Sub map's own
// AnotherKey() holds what's bound if the sequence stops here).
func (m *Map) GetBound(seq []rune) (Binding, bool) {
	node := m
	for _, k := range seq {
		child, ok := node.children[k]
		if !ok {
			if node == m && len(seq) == 1 && !m.defaultBinding.IsZero() {
				return m.defaultBinding, true
			}
			return Binding{}, false
		}
		node = child
	}
	if node.HasChildren() {
		return SubBinding(node), true
	}
	return node.bound, true
}
