package glide

// --- Callback contexts ---

// DragContext carries drag event data. GlobalX/GlobalY are in screen space.
// StartX/StartY and the per-frame deltas are in the viewport's local space.
type DragContext struct {
	View      *ScrollView
	GlobalX   float64
	GlobalY   float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	PointerID int
}

// Delta returns the per-frame drag movement as a vector.
func (c DragContext) Delta() Vec2 {
	return Vec2{c.DeltaX, c.DeltaY}
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic — glide is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is a positionable, animatable element in a scroll view. The viewport,
// the scrolling content and every scrollable element are Nodes.
//
// X and Y place the node's pivot in its parent's space. PivotX and PivotY are
// normalized (0 = left/top, 1 = right/bottom) against Width and Height, so the
// visual center of a node in its parent's space is
// (X + Width*(0.5-PivotX), Y + Height*(0.5-PivotY)).
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Index is the element's stable ordering within its scroll content,
	// assigned when the content's children are enumerated or laid out.
	Index int

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	Width    float64
	Height   float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Computed, refreshed by updateWorldTransform.
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility
	Alpha   float64
	Visible bool
	Color   Color

	// Animator is the optional animation-capable handle used by
	// AnimationBinder. Nil means the element has no feedback animation.
	Animator *Animator

	// Metadata
	UserData any
	EntityID uint32

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a node with no size, used for grouping.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewElement creates a sized node suitable as a scroll element. The pivot is
// centered.
func NewElement(name string, width, height float64) *Node {
	n := &Node{Name: name, Width: width, Height: height, PivotX: 0.5, PivotY: 0.5}
	nodeDefaults(n)
	return n
}

// Size returns the node's unscaled width and height.
func (n *Node) Size() Vec2 {
	return Vec2{n.Width, n.Height}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("glide: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("glide: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("glide: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("glide: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	markSubtreeDirty(child)
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Engine components holding a
// disposed node treat it as a stale reference and skip it.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	if n.Animator != nil {
		n.Animator.Stop()
		n.Animator = nil
	}
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// isLive reports whether n can be used as an element reference.
func isLive(n *Node) bool {
	return n != nil && !n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
