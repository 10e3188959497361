package model

// Clone helpers give the store its own copy of an incoming entity, so a
// caller that keeps mutating its payload after a dispatch cannot reach into
// a snapshot. Amounts come out in canonical form.

// Clone returns a with its balance canonicalized.
func (a Account) Clone() Account {
	a.InitialBalance = a.InitialBalance.canonical()
	return a
}

// Clone returns t with its amount canonicalized.
func (t Transaction) Clone() Transaction {
	t.Amount = t.Amount.canonical()
	return t
}

// Clone returns a copy of t that shares no deadline with the original.
func (t Task) Clone() Task {
	if t.Deadline != nil {
		d := *t.Deadline
		t.Deadline = &d
	}
	return t
}

// Clone returns a deep copy of p. A nil task list comes back empty.
func (p Project) Clone() Project {
	if p.Value != nil {
		v := p.Value.canonical()
		p.Value = &v
	}
	p.Tasks = cloneTasks(p.Tasks)
	return p
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// copied returns a fresh, non-nil slice holding fn(v) for every v in s.
func copied[T any](s []T, fn func(T) T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		if fn != nil {
			v = fn(v)
		}
		out[i] = v
	}
	return out
}
