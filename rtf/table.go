package rtf

// Table assigns stable indexes to distinct values in order of first
// appearance. Indexes are never reused or reordered.
type Table[T comparable] struct {
	index  map[T]int
	values []T
}

func NewTable[T comparable]() *Table[T] {
	return &Table[T]{index: make(map[T]int)}
}

// Intern returns index of the value adding it to the table when seen for the
// first time.
func (t *Table[T]) Intern(v T) int {
	if i, ok := t.index[v]; ok {
		return i
	}
	i := len(t.values)
	t.index[v] = i
	t.values = append(t.values, v)
	return i
}

// Lookup returns value stored under index.
func (t *Table[T]) Lookup(i int) (T, bool) {
	if i < 0 || i >= len(t.values) {
		var zero T
		return zero, false
	}
	return t.values[i], true
}

func (t *Table[T]) Len() int {
	return len(t.values)
}

// Values returns table content in index order.
func (t *Table[T]) Values() []T {
	return t.values
}
