// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

// lifecycle pairs EdgeFinished messages with their EdgeStarted. An id
// in the table is outstanding: started and not yet finished.
type lifecycle struct {
	running map[int]EdgeStarted
}

func newLifecycle() *lifecycle {
	return &lifecycle{running: make(map[int]EdgeStarted)}
}

// begin records started as outstanding. An id that is already
// outstanding is a protocol violation: accepting it would lose the
// first start and leave the table smaller than the running count.
func (table *lifecycle) begin(started EdgeStarted) error {
	if _, exists := table.running[started.ID]; exists {
		return protocolErrorf(started.ID, "duplicate start for outstanding edge %d", started.ID)
	}
	table.running[started.ID] = started
	return nil
}

// end removes and returns the start event for id. A finish for an id
// that is not outstanding is a protocol violation.
func (table *lifecycle) end(id int) (EdgeStarted, error) {
	started, exists := table.running[id]
	if !exists {
		return EdgeStarted{}, protocolErrorf(id, "edge %d finished without matching start", id)
	}
	delete(table.running, id)
	return started, nil
}

func (table *lifecycle) outstanding() int {
	return len(table.running)
}
