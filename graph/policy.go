package graph

import "reflect"

// Policy decides whether a freshly computed result should fire the Node's
// downstream Inputs. The closed set of implementations is Always and
// OnChange; both are obtained from the constructors below.
//
// Propagate is only ever invoked while the owning Node's exclusion flag is
// held, so implementations need not be safe against concurrent calls on the
// same Node.
type Policy[R any] interface {
	Propagate(result R) bool
}

type alwaysPolicy[R any] struct{}

func (alwaysPolicy[R]) Propagate(R) bool { return true }

// Always returns a policy that propagates every result unconditionally.
// It holds no state, so a single value may be shared between Nodes.
func Always[R any]() Policy[R] {
	return alwaysPolicy[R]{}
}

// onChangePolicy remembers the last propagated result and suppresses
// propagation when the new result is structurally equal to it. The stored
// Value starts at R's zero value, so a first result equal to the zero value
// is suppressed as well.
type onChangePolicy[R any] struct {
	last Value[R]
}

func (p *onChangePolicy[R]) Propagate(latest R) bool {
	prev := p.last.Exchange(latest)
	return !reflect.DeepEqual(prev, latest)
}

// OnChange returns a policy that propagates a result only when it differs
// structurally from the previously propagated one. Each Node needs its own
// OnChange value; sharing one across Nodes would conflate their histories.
func OnChange[R any]() Policy[R] {
	return &onChangePolicy[R]{}
}
