package ast

import "github.com/cwbudde/corec/internal/arena"

// Store owns the node arena and the shared small-array pool that every
// Index into this package's nodes is relative to. A Store is created once
// per compilation and threaded through the parser and every semantic pass.
type Store struct {
	nodes  arena.Arena[Node]
	small  arena.SmallArrayPool
	basics *basicTypeCache
	scopes []Scope
}

// NewStore returns an empty Store. Index 0 is deliberately never allocated
// so Undefined stays distinguishable from any real node.
func NewStore() *Store {
	s := &Store{}
	s.nodes.Append(Node{}) // burn offset 0
	return s
}

// alloc appends a fresh node of the given kind and returns its handle.
func (s *Store) alloc(kind Kind, pos Position) Index {
	off := s.nodes.Append(Node{Header: Header{Kind: kind, Pos: pos}})
	return New(kind, off)
}

// Node dereferences a handle. Undefined dereferences to the placeholder
// node in the burned slot 0 rather than panicking.
func (s *Store) Node(i Index) *Node {
	return s.nodes.Ptr(i.Payload())
}

// Items returns the child handles denoted by a SmallArray, e.g. a
// function's parameter list or a block's statement list.
func (s *Store) Items(sa SmallArray) []Index {
	raw := s.small.Get(sa)
	out := make([]Index, len(raw))
	for i, v := range raw {
		out[i] = Index(v)
	}
	return out
}

// NewItems interns a freshly built list of child handles into the small
// array pool.
func (s *Store) NewItems(items ...Index) SmallArray {
	raw := make([]uint32, len(items))
	for i, v := range items {
		raw[i] = uint32(v)
	}
	return s.small.Append(raw...)
}

// ReplaceItems substitutes newItems for the oldCount items at index within
// sa, the mechanism the static-expansion sweep and template/foreach
// cloning both use to splice expanded content into a declaration list
// in place. It returns the resulting SmallArray; the old range of sa (if any)
// is left allocated but unreferenced, matching the arena's never-free policy.
func (s *Store) ReplaceItems(sa SmallArray, index, oldCount int, newItems []Index) SmallArray {
	cur := s.Items(sa)
	raw := make([]uint32, len(newItems))
	for i, v := range newItems {
		raw[i] = uint32(v)
	}
	next := arena.ReplaceAt(toU32(cur), index, oldCount, raw)
	return s.small.Append(next...)
}

func toU32(idx []Index) []uint32 {
	out := make([]uint32, len(idx))
	for i, v := range idx {
		out[i] = uint32(v)
	}
	return out
}
