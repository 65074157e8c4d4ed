package models

import "fmt"

// Subtask is one node in a task's checklist tree. Trees may nest arbitrarily.
type Subtask struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Done     bool       `json:"done"`
	Children []*Subtask `json:"children,omitempty"`
}

// SubtaskIndex is a flat id-indexed view over a subtask tree, so lookups and
// toggles are O(1) instead of re-walking the tree on every mutation.
type SubtaskIndex struct {
	roots  []*Subtask
	nodes  map[string]*Subtask
	parent map[string]*Subtask // nil value means root
}

func NewSubtaskIndex(roots []*Subtask) *SubtaskIndex {
	ix := &SubtaskIndex{
		roots:  roots,
		nodes:  make(map[string]*Subtask),
		parent: make(map[string]*Subtask),
	}
	for _, n := range roots {
		ix.register(n, nil)
	}
	return ix
}

func (ix *SubtaskIndex) register(n *Subtask, parent *Subtask) {
	ix.nodes[n.ID] = n
	ix.parent[n.ID] = parent
	for _, c := range n.Children {
		ix.register(c, n)
	}
}

// Roots returns the (possibly mutated) tree for persisting back to the task.
func (ix *SubtaskIndex) Roots() []*Subtask {
	return ix.roots
}

func (ix *SubtaskIndex) Get(id string) (*Subtask, bool) {
	n, ok := ix.nodes[id]
	return n, ok
}

// Toggle flips the done flag of the node with the given id.
func (ix *SubtaskIndex) Toggle(id string) (bool, error) {
	n, ok := ix.nodes[id]
	if !ok {
		return false, fmt.Errorf("subtask %s not found", id)
	}
	n.Done = !n.Done
	return n.Done, nil
}

// Add attaches a node under parentID, or as a new root when parentID is empty.
func (ix *SubtaskIndex) Add(parentID string, node *Subtask) error {
	if _, exists := ix.nodes[node.ID]; exists {
		return fmt.Errorf("subtask %s already exists", node.ID)
	}
	if parentID == "" {
		ix.roots = append(ix.roots, node)
		ix.register(node, nil)
		return nil
	}
	p, ok := ix.nodes[parentID]
	if !ok {
		return fmt.Errorf("subtask %s not found", parentID)
	}
	p.Children = append(p.Children, node)
	ix.register(node, p)
	return nil
}

// Remove detaches the node (and its whole subtree) from the tree and index.
func (ix *SubtaskIndex) Remove(id string) error {
	n, ok := ix.nodes[id]
	if !ok {
		return fmt.Errorf("subtask %s not found", id)
	}
	p := ix.parent[id]
	if p == nil {
		ix.roots = detach(ix.roots, n)
	} else {
		p.Children = detach(p.Children, n)
	}
	ix.unregister(n)
	return nil
}

func (ix *SubtaskIndex) unregister(n *Subtask) {
	delete(ix.nodes, n.ID)
	delete(ix.parent, n.ID)
	for _, c := range n.Children {
		ix.unregister(c)
	}
}

func detach(list []*Subtask, target *Subtask) []*Subtask {
	out := list[:0]
	for _, n := range list {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}

// Progress returns done and total node counts across the whole tree.
func (ix *SubtaskIndex) Progress() (done, total int) {
	for _, n := range ix.nodes {
		total++
		if n.Done {
			done++
		}
	}
	return done, total
}
