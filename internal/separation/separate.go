package separation

import (
	"context"

	"github.com/ironsheep/crypt-count-mcp/internal/contour"
)

// Separate splits root into one contour per crypt.
//
// Parameters:
//   - ctx: Checked before each node is evaluated.
//   - root: The traced outline of one blob.
//   - p: Size floor and defect threshold.
//
// Returns:
//   - []contour.Contour: the leaves in the order they were finalised, each at
//     least p.MinCryptSize in area. Empty if root itself is too small. A root
//     with no usable cut is returned unchanged as the only element.
//   - error: wraps ErrInvalidParams for bad parameters, ctx.Err() on
//     cancellation, or contour.ErrInvalidSplitPoints on an internal failure.
//
// # Algorithm
//
// Nodes are processed first in, first out. A Split appends both halves to the
// back of the queue; a NoSplit makes the node a leaf if it is large enough.
// Every accepted half is strictly smaller than its parent, so the loop
// terminates.
func Separate(ctx context.Context, root contour.Contour, p Params) ([]contour.Contour, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	queue := []contour.Contour{root}
	var leaves []contour.Contour
	for head := 0; head < len(queue); head++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n := NewNode(queue[head], p)
		queue[head] = contour.Contour{}

		dec, err := Decide(n)
		if err != nil {
			return nil, err
		}
		switch d := dec.(type) {
		case Split:
			queue = append(queue, d.A, d.B)
		case NoSplit:
			if n.LargeEnough() {
				leaves = append(leaves, n.Contour())
			}
		}
	}
	return leaves, nil
}
