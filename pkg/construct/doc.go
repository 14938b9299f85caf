// Package construct turns a component item into a live object tree
// without holding the host for more than a frame budget at a time.
//
// Construction has two phases. Flatten walks the binary description of
// the root item, and recursively of every component and list item it
// references, and emits a Plan: one Node per object, children before their
// parent. A Run then builds the plan in order, keeping built objects on a
// stack. A node that owns N children finds them in the top N slots, hands
// them to its object and replaces them with that object, the same way a
// postfix expression is evaluated. The last node leaves the root as the
// only pooled object.
//
// Runs are cooperative. The host calls Step once per frame:
//
//	r, err := construct.Start(reg, item, construct.Options{}, func(root object.Object) {
//	    window.AddChild(root)
//	})
//	...
//	for r.State() != construct.Done {
//	    r.Step()
//	    waitForFrame()
//	}
//
// The completion callback is never called from Start, nor from the Step
// that builds the root, so callers can rely on it running later.
//
// A Queue drives any number of runs for a host, and Metrics collects
// counters across them.
package construct
