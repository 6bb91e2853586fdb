package delegate

import (
	"reflect"
	"slices"
)

// Builder turns an entry of a Model into an item.
type Builder[T any] func(index int, value T) any

type entry struct {
	item     any
	refs     int
	pending  bool
	canceled bool
}

type observation struct {
	observer Observer
}

// Model is an ItemModel over a slice of values. Items are built on demand by
// a Builder and destroyed when their last reference is released.
//
// Asynchronous requests are queued until Step or Flush is called, which lets
// callers decide when incubation work happens. A synchronous model builds
// every item on request.
type Model[T any] struct {
	values  []T
	entries []*entry
	items   map[any]*entry
	queue   []*entry
	build   Builder[T]

	observers []*observation
	nextMove  int
	incubate  func()
	sync      bool
}

// NewModel returns a model over values.
func NewModel[T any](build Builder[T], values ...T) *Model[T] {
	return &Model[T]{
		values:  slices.Clone(values),
		entries: make([]*entry, len(values)),
		items:   make(map[any]*entry),
		build:   build,
	}
}

// SetIncubateFunc sets a handler which is called whenever an asynchronous
// request is queued. The handler typically schedules Flush.
func (m *Model[T]) SetIncubateFunc(handler func()) *Model[T] {
	m.incubate = handler
	return m
}

// SetSynchronous makes asynchronous requests build their item immediately.
func (m *Model[T]) SetSynchronous(sync bool) *Model[T] {
	m.sync = sync
	return m
}

// Count implements ItemModel.
func (m *Model[T]) Count() int {
	return len(m.values)
}

// Value returns the value at index.
func (m *Model[T]) Value(index int) T {
	return m.values[index]
}

// Values returns a copy of all values.
func (m *Model[T]) Values() []T {
	return slices.Clone(m.values)
}

// Live returns the number of items that currently exist.
func (m *Model[T]) Live() int {
	return len(m.items)
}

// Pending returns the number of queued asynchronous requests.
func (m *Model[T]) Pending() int {
	return len(m.queue)
}

// Incubating implements ItemModel.
func (m *Model[T]) Incubating(index int) bool {
	if index < 0 || index >= len(m.entries) {
		return false
	}
	e := m.entries[index]
	return e != nil && e.pending
}

// Object implements ItemModel.
func (m *Model[T]) Object(index int, async bool) any {
	if index < 0 || index >= len(m.values) {
		return nil
	}

	if m.sync {
		async = false
	}

	e := m.entries[index]
	switch {
	case e == nil && async:
		e = &entry{pending: true}
		m.entries[index] = e
		m.queue = append(m.queue, e)
		if m.incubate != nil {
			m.incubate()
		}
		return nil
	case e == nil:
		e = &entry{}
		m.entries[index] = e
		if !m.complete(index, e) {
			return nil
		}
	case e.pending && async:
		return nil
	case e.pending:
		m.dequeue(e)
		if !m.complete(index, e) {
			return nil
		}
	}

	e.refs++
	return e.item
}

// Release implements ItemModel.
func (m *Model[T]) Release(item any) ReleaseResult {
	e, ok := m.items[item]
	if !ok {
		return FullyReleased
	}
	e.refs--
	if e.refs > 0 {
		return StillReferenced
	}
	m.destroy(e)
	return FullyReleased
}

// Cancel implements ItemModel.
func (m *Model[T]) Cancel(index int) {
	if index < 0 || index >= len(m.entries) {
		return
	}
	e := m.entries[index]
	switch {
	case e == nil:
	case e.pending:
		m.dequeue(e)
		m.entries[index] = nil
	case e.refs <= 0:
		m.destroy(e)
	}
}

// IndexOf implements ItemModel.
func (m *Model[T]) IndexOf(item any) int {
	e, ok := m.items[item]
	if !ok {
		return -1
	}
	return slices.Index(m.entries, e)
}

// Observe implements ItemModel.
func (m *Model[T]) Observe(o Observer) func() {
	obs := &observation{observer: o}
	m.observers = append(m.observers, obs)
	return func() {
		m.observers = slices.DeleteFunc(m.observers, func(x *observation) bool { return x == obs })
	}
}

// Step completes the oldest queued request. It reports whether there was
// one.
func (m *Model[T]) Step() bool {
	for len(m.queue) > 0 {
		e := m.queue[0]
		m.queue = m.queue[1:]
		if e.canceled {
			continue
		}
		index := slices.Index(m.entries, e)
		if index < 0 {
			continue
		}
		m.complete(index, e)
		return true
	}
	return false
}

// Flush completes every queued request, including requests queued while
// flushing, and returns how many were completed.
func (m *Model[T]) Flush() int {
	n := 0
	for m.Step() {
		n++
	}
	return n
}

// Insert inserts values at index.
func (m *Model[T]) Insert(index int, values ...T) {
	if len(values) == 0 || index < 0 || index > len(m.values) {
		return
	}
	m.values = slices.Insert(m.values, index, values...)
	m.entries = slices.Insert(m.entries, index, make([]*entry, len(values))...)
	m.notify(ChangeSet{Inserts: []Change{{Index: index, Count: len(values)}}}, false)
}

// Append appends values.
func (m *Model[T]) Append(values ...T) {
	m.Insert(len(m.values), values...)
}

// Remove removes count entries starting at index. Items of removed entries
// stay alive until they are released.
func (m *Model[T]) Remove(index, count int) {
	if count <= 0 || index < 0 || index+count > len(m.values) {
		return
	}
	m.detach(m.entries[index : index+count])
	m.values = slices.Delete(m.values, index, index+count)
	m.entries = slices.Delete(m.entries, index, index+count)
	m.notify(ChangeSet{Removes: []Change{{Index: index, Count: count}}}, false)
}

// Move moves count entries from index from so that they start at index to
// afterwards. Items follow their entries.
func (m *Model[T]) Move(from, to, count int) {
	n := len(m.values)
	if count <= 0 || from == to || from < 0 || to < 0 || from+count > n || to+count > n {
		return
	}

	values := slices.Clone(m.values[from : from+count])
	entries := slices.Clone(m.entries[from : from+count])
	m.values = slices.Insert(slices.Delete(m.values, from, from+count), to, values...)
	m.entries = slices.Insert(slices.Delete(m.entries, from, from+count), to, entries...)

	m.nextMove++
	id := m.nextMove
	m.notify(ChangeSet{
		Removes: []Change{{Index: from, Count: count, MoveID: id}},
		Inserts: []Change{{Index: to, Count: count, MoveID: id}},
	}, false)
}

// Set replaces the value at index. The entry keeps its item.
func (m *Model[T]) Set(index int, value T) {
	if index >= 0 && index < len(m.values) {
		m.values[index] = value
	}
}

// Reset replaces every value. Existing items stay alive until they are
// released.
func (m *Model[T]) Reset(values ...T) {
	old := len(m.values)
	m.detach(m.entries)
	m.values = slices.Clone(values)
	m.entries = make([]*entry, len(values))

	var changes ChangeSet
	if old > 0 {
		changes.Removes = []Change{{Index: 0, Count: old}}
	}
	if len(values) > 0 {
		changes.Inserts = []Change{{Index: 0, Count: len(values)}}
	}
	m.notify(changes, true)
}

// complete builds the item of e. Items that cannot serve as a handle are
// dropped and announced as nil.
func (m *Model[T]) complete(index int, e *entry) bool {
	item := m.build(index, m.values[index])
	e.pending = false
	if item == nil || !reflect.TypeOf(item).Comparable() {
		m.entries[index] = nil
		for _, obs := range slices.Clone(m.observers) {
			obs.observer.CreatedItem(index, nil)
		}
		return false
	}
	e.item = item
	m.items[item] = e

	for _, obs := range slices.Clone(m.observers) {
		obs.observer.InitItem(index, item)
	}
	for _, obs := range slices.Clone(m.observers) {
		obs.observer.CreatedItem(index, item)
	}
	return true
}

func (m *Model[T]) destroy(e *entry) {
	delete(m.items, e.item)
	if i := slices.Index(m.entries, e); i >= 0 {
		m.entries[i] = nil
	}
}

// detach forgets entries that are leaving the model. Pending requests are
// canceled and unreferenced items destroyed.
func (m *Model[T]) detach(entries []*entry) {
	for _, e := range entries {
		switch {
		case e == nil:
		case e.pending:
			e.canceled = true
			m.dequeue(e)
		case e.refs <= 0:
			delete(m.items, e.item)
		}
	}
}

func (m *Model[T]) dequeue(e *entry) {
	m.queue = slices.DeleteFunc(m.queue, func(x *entry) bool { return x == e })
}

func (m *Model[T]) notify(changes ChangeSet, reset bool) {
	for _, obs := range slices.Clone(m.observers) {
		obs.observer.ModelUpdated(changes, reset)
	}
}
