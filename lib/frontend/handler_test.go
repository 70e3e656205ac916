// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

import "testing"

// messageRecorder records which text method each message reached.
type messageRecorder struct {
	NopHandler
	calls []string
}

func (recorder *messageRecorder) HandleInfo(message Message) error {
	recorder.calls = append(recorder.calls, "info:"+message.Text)
	return nil
}

func (recorder *messageRecorder) HandleWarning(message Message) error {
	recorder.calls = append(recorder.calls, "warning:"+message.Text)
	return nil
}

func (recorder *messageRecorder) HandleError(message Message) error {
	recorder.calls = append(recorder.calls, "error:"+message.Text)
	return nil
}

func TestDispatchRoutesMessagesByKind(t *testing.T) {
	t.Parallel()
	recorder := &messageRecorder{}
	events := []Event{
		Message{Kind: MessageWarning, Text: "a"},
		Message{Kind: MessageInfo, Text: "b"},
		Message{Kind: MessageError, Text: "c"},
	}
	for _, event := range events {
		if err := Dispatch(recorder, event); err != nil {
			t.Fatalf("Dispatch(%v): %v", event, err)
		}
	}

	want := []string{"warning:a", "info:b", "error:c"}
	if len(recorder.calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", recorder.calls, want)
	}
	for index := range want {
		if recorder.calls[index] != want[index] {
			t.Errorf("call %d: got %q, want %q", index, recorder.calls[index], want[index])
		}
	}
}

func TestDispatchUnimplementedKindIsDropped(t *testing.T) {
	t.Parallel()
	recorder := &messageRecorder{}
	events := []Event{
		TotalEdges{TotalEdges: 1},
		BuildStarted{Parallelism: 1},
		EdgeStarted{ID: 1},
		EdgeFinished{ID: 1},
		BuildFinished{},
		Unknown{Raw: []any{99}},
	}
	for _, event := range events {
		if err := Dispatch(recorder, event); err != nil {
			t.Errorf("Dispatch(%T): %v", event, err)
		}
	}
	if len(recorder.calls) != 0 {
		t.Errorf("text methods called for non-text events: %v", recorder.calls)
	}
}

func TestMessageKindString(t *testing.T) {
	t.Parallel()
	for kind, want := range map[MessageKind]string{
		MessageInfo:     "info",
		MessageWarning:  "warning",
		MessageError:    "error",
		MessageKind(12): "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("MessageKind(%d).String(): got %q, want %q", int(kind), got, want)
		}
	}
}
