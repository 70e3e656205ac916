// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

// Header is the first value on every status stream: "NJS1" read as a
// big-endian 32-bit integer.
const Header = 0x4e4a5331

// Tag is the integer in element 0 of every post-header message.
type Tag int

const (
	TagTotalEdges    Tag = 0
	TagBuildStarted  Tag = 1
	TagBuildFinished Tag = 2
	TagEdgeStarted   Tag = 3
	TagEdgeFinished  Tag = 4
	TagInfo          Tag = 5
	TagWarning       Tag = 6
	TagError         Tag = 7
)

// Event is one decoded status message. The concrete types are
// TotalEdges, BuildStarted, BuildFinished, EdgeStarted, EdgeFinished,
// Message and Unknown. Events are values and are never modified after
// decoding.
type Event interface {
	isEvent()
}

// TotalEdges reports the number of edges the build plans to run. It
// may be sent more than once as the plan grows.
type TotalEdges struct {
	TotalEdges int
}

// BuildStarted opens a build.
type BuildStarted struct {
	// Parallelism is the number of edges the build runs at once.
	Parallelism int

	// Verbose is true when the build was invoked in verbose mode: full
	// commands are shown instead of descriptions.
	Verbose bool
}

// BuildFinished closes a build.
type BuildFinished struct{}

// EdgeStarted reports that an edge began running.
type EdgeStarted struct {
	// ID identifies the edge for the lifetime of the stream. The
	// matching EdgeFinished carries the same ID.
	ID int

	// StartTimeMillis is milliseconds since the build started.
	StartTimeMillis int64

	Inputs  []string
	Outputs []string

	// Description is the human-readable summary, possibly empty.
	Description string

	// Command is the full command line.
	Command string

	// Console is true when the edge writes directly to the terminal
	// and must not be interleaved with status output.
	Console bool
}

// EdgeFinished reports that an edge completed.
type EdgeFinished struct {
	ID            int
	EndTimeMillis int64

	// Status is the exit status; zero means success.
	Status int

	// Output is the captured stdout and stderr of the edge. It may
	// contain ANSI escape sequences.
	Output string

	// Started is the EdgeStarted with the same ID. The decoder fills
	// it in from its lifecycle table; it is not part of the message.
	Started EdgeStarted
}

// Failed reports whether the edge exited with a non-zero status.
func (finished EdgeFinished) Failed() bool {
	return finished.Status != 0
}

// MessageKind distinguishes the three text message tags.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageWarning
	MessageError
)

func (kind MessageKind) String() string {
	switch kind {
	case MessageInfo:
		return "info"
	case MessageWarning:
		return "warning"
	case MessageError:
		return "error"
	default:
		return "unknown"
	}
}

// Message is an informational, warning or error line from the build
// tool itself.
type Message struct {
	Kind MessageKind
	Text string
}

// Unknown carries a well-formed message whose tag this frontend does
// not recognize. Raw is the whole decoded array, tag included.
type Unknown struct {
	Raw any
}

func (TotalEdges) isEvent()    {}
func (BuildStarted) isEvent()  {}
func (BuildFinished) isEvent() {}
func (EdgeStarted) isEvent()   {}
func (EdgeFinished) isEvent()  {}
func (Message) isEvent()       {}
func (Unknown) isEvent()       {}
