// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/bureau-foundation/buildstatus/lib/codec"
	"github.com/bureau-foundation/buildstatus/lib/testutil"
)

// edgeRecorder implements only the edge methods and checks, at every
// dispatch, that its running count matches the decoder's outstanding
// table.
type edgeRecorder struct {
	NopHandler
	frontend *Frontend
	t        *testing.T

	started  int
	finished int
	order    []int
}

func (recorder *edgeRecorder) HandleEdgeStarted(event EdgeStarted) error {
	recorder.started++
	recorder.order = append(recorder.order, event.ID)
	recorder.checkRunning()
	return nil
}

func (recorder *edgeRecorder) HandleEdgeFinished(event EdgeFinished) error {
	recorder.finished++
	recorder.order = append(recorder.order, -event.ID)
	recorder.checkRunning()
	return nil
}

func (recorder *edgeRecorder) checkRunning() {
	running := recorder.started - recorder.finished
	if running < 0 {
		recorder.t.Errorf("running edges went negative: %d", running)
	}
	if outstanding := recorder.frontend.Outstanding(); outstanding != running {
		recorder.t.Errorf("outstanding table has %d edges, handler counts %d running", outstanding, running)
	}
}

func TestFrontendRunsUntilEndOfStream(t *testing.T) {
	t.Parallel()
	for _, encoding := range testEncodings {
		t.Run(string(encoding), func(t *testing.T) {
			t.Parallel()
			data := encodeStream(t, encoding,
				Header,
				[]any{int(TagTotalEdges), 3},
				[]any{int(TagBuildStarted), 2, false},
				edgeStartedMessage(1, 0, false),
				edgeStartedMessage(2, 5, false),
				edgeFinishedMessage(2, 10, 0, ""),
				edgeStartedMessage(3, 12, true),
				edgeFinishedMessage(1, 15, 0, ""),
				edgeFinishedMessage(3, 20, 1, "failed\n"),
				[]any{int(TagInfo), "no work to do"},
				[]any{int(TagBuildFinished)},
			)

			recorder := &edgeRecorder{t: t}
			frontend, err := New(Config{
				Input:    iotest.OneByteReader(bytes.NewReader(data)),
				Encoding: encoding,
				Handler:  recorder,
			})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			recorder.frontend = frontend

			if err := frontend.Run(); err != nil {
				t.Fatalf("Run: %v", err)
			}

			want := []int{1, 2, -2, 3, -1, -3}
			if len(recorder.order) != len(want) {
				t.Fatalf("edge events: got %v, want %v", recorder.order, want)
			}
			for index := range want {
				if recorder.order[index] != want[index] {
					t.Errorf("edge events: got %v, want %v", recorder.order, want)
					break
				}
			}
		})
	}
}

func TestFrontendProtocolErrorStopsRun(t *testing.T) {
	t.Parallel()
	data := encodeStream(t, codec.EncodingMsgpack,
		Header,
		edgeFinishedMessage(9, 10, 0, ""),
		[]any{int(TagBuildFinished)},
	)

	var finished int
	handler := &finishCounter{count: &finished}
	frontend, err := New(Config{Input: bytes.NewReader(data), Handler: handler})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = frontend.Run()
	var protocolErr *ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("Run: got %v, want *ProtocolError", err)
	}
	if finished != 0 {
		t.Errorf("build finished dispatched after protocol error")
	}
}

type finishCounter struct {
	NopHandler
	count *int
}

func (counter *finishCounter) HandleBuildFinished(BuildFinished) error {
	*counter.count++
	return nil
}

type failingHandler struct {
	NopHandler
	err error
}

func (handler failingHandler) HandleTotalEdges(TotalEdges) error {
	return handler.err
}

func TestFrontendHandlerErrorStopsRun(t *testing.T) {
	t.Parallel()
	data := encodeStream(t, codec.EncodingMsgpack, Header, []any{int(TagTotalEdges), 1})
	handlerErr := errors.New("terminal gone")

	frontend, err := New(Config{Input: bytes.NewReader(data), Handler: failingHandler{err: handlerErr}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := frontend.Run(); !errors.Is(err, handlerErr) {
		t.Fatalf("Run: got %v, want wrapped %v", err, handlerErr)
	}
}

func TestFrontendReadError(t *testing.T) {
	t.Parallel()
	readErr := errors.New("bad descriptor")
	frontend, err := New(Config{Input: iotest.ErrReader(readErr), Handler: NopHandler{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := frontend.Run(); !errors.Is(err, readErr) {
		t.Fatalf("Run: got %v, want wrapped %v", err, readErr)
	}
}

func TestFrontendTruncatedStreamIsCleanExit(t *testing.T) {
	t.Parallel()
	data := encodeStream(t, codec.EncodingMsgpack, Header, edgeStartedMessage(1, 0, false))
	frontend, err := New(Config{Input: bytes.NewReader(data[:len(data)-2]), Handler: NopHandler{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := frontend.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestFrontendOverPipe(t *testing.T) {
	t.Parallel()
	reader, writer := io.Pipe()

	var finished int
	frontend, err := New(Config{Input: reader, Handler: &finishCounter{count: &finished}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- frontend.Run()
	}()

	data := encodeStream(t, codec.EncodingMsgpack, Header, []any{int(TagBuildFinished)})
	// Split the header across writes so the decoder must hold a
	// partial value between reads.
	for _, chunk := range [][]byte{data[:2], data[2:]} {
		if _, err := writer.Write(chunk); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	writer.Close()

	if err := testutil.RequireReceive(t, done, testutil.DefaultTimeout, "Run after the writer closed"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if finished != 1 {
		t.Errorf("build finished events: got %d, want 1", finished)
	}
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()
	if _, err := New(Config{Handler: NopHandler{}}); err == nil {
		t.Error("New without Input: expected error")
	}
	if _, err := New(Config{Input: bytes.NewReader(nil)}); err == nil {
		t.Error("New without Handler: expected error")
	}
	if _, err := New(Config{Input: bytes.NewReader(nil), Handler: NopHandler{}, Encoding: "xml"}); err == nil {
		t.Error("New with unknown encoding: expected error")
	}
}
