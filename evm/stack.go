package evm

import (
	"fmt"
	"strings"

	"github.com/entropyio/cubipods/config"
)

// Stack is an object for basic stack operations. Items popped to the stack are
// expected to be changed and modified. stack does not take care of adding newly
// initialised objects.
type Stack struct {
	data []Word
}

func newstack() *Stack {
	return &Stack{data: make([]Word, 0, 16)}
}

// Data returns the underlying uint256.Int array, bottom first.
func (st *Stack) Data() []Word {
	return st.data
}

// Len returns the number of items on the stack.
func (st *Stack) Len() int {
	return len(st.data)
}

// Push appends d on top of the stack.
func (st *Stack) Push(d *Word) error {
	if err := st.ValidSize(1); err != nil {
		return err
	}
	st.data = append(st.data, *d)
	return nil
}

// Pop removes and returns the top item.
func (st *Stack) Pop() (Word, error) {
	if len(st.data) == 0 {
		return Word{}, errStackUnderflow(0, 1)
	}
	ret := st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return ret, nil
}

// Peek returns the n-th item counted from the top, 0 being the top itself.
func (st *Stack) Peek(n int) (*Word, error) {
	if n < 0 || n >= len(st.data) {
		return nil, errStackUnderflow(len(st.data), n+1)
	}
	return &st.data[len(st.data)-1-n], nil
}

// Dup pushes a copy of the n-th item from the top, DUP1 copying the top.
func (st *Stack) Dup(n int) error {
	if n < 1 || n > len(st.data) {
		return errStackUnderflow(len(st.data), n)
	}
	if err := st.ValidSize(1); err != nil {
		return err
	}
	st.data = append(st.data, st.data[len(st.data)-n])
	return nil
}

// Swap exchanges the top item with the (n+1)-th item from the top.
func (st *Stack) Swap(n int) error {
	if n < 1 || n >= len(st.data) {
		return errStackUnderflow(len(st.data), n+1)
	}
	top := len(st.data) - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
	return nil
}

// drop discards the top n items. Callers check the depth first.
func (st *Stack) drop(n int) {
	st.data = st.data[:len(st.data)-n]
}

// Require checks if there are at least n items on the stack.
func (st *Stack) Require(n int) error {
	if len(st.data) < n {
		return errStackUnderflow(len(st.data), n)
	}
	return nil
}

// ValidSize checks if pushing n items would exceed the stack limit.
func (st *Stack) ValidSize(n int) error {
	if len(st.data)+n > int(config.StackLimit) {
		return errStackOverflow(len(st.data)+n, int(config.StackLimit))
	}
	return nil
}

// Snapshot returns a copy of the stack contents, bottom first.
func (st *Stack) Snapshot() []Word {
	cpy := make([]Word, len(st.data))
	copy(cpy, st.data)
	return cpy
}

// String renders the stack top first.
func (st *Stack) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i := len(st.data) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%s", st.data[i].Hex())
		if i > 0 {
			b.WriteString(" ")
		}
	}
	b.WriteString("]")
	return b.String()
}
