// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

import "fmt"

// Handler receives decoded events, one method per message tag. A
// handler returns an error only when it cannot continue; the error
// stops the frontend.
//
// Implementations that care about a subset of events embed NopHandler
// and override the methods they need:
//
//	type failureCounter struct {
//	    frontend.NopHandler
//	    failed int
//	}
//
//	func (counter *failureCounter) HandleEdgeFinished(event frontend.EdgeFinished) error {
//	    if event.Failed() {
//	        counter.failed++
//	    }
//	    return nil
//	}
type Handler interface {
	HandleTotalEdges(TotalEdges) error
	HandleBuildStarted(BuildStarted) error
	HandleBuildFinished(BuildFinished) error
	HandleEdgeStarted(EdgeStarted) error
	HandleEdgeFinished(EdgeFinished) error
	HandleInfo(Message) error
	HandleWarning(Message) error
	HandleError(Message) error
	HandleUnknown(Unknown) error
}

// NopHandler ignores every event.
type NopHandler struct{}

func (NopHandler) HandleTotalEdges(TotalEdges) error       { return nil }
func (NopHandler) HandleBuildStarted(BuildStarted) error   { return nil }
func (NopHandler) HandleBuildFinished(BuildFinished) error { return nil }
func (NopHandler) HandleEdgeStarted(EdgeStarted) error     { return nil }
func (NopHandler) HandleEdgeFinished(EdgeFinished) error   { return nil }
func (NopHandler) HandleInfo(Message) error                { return nil }
func (NopHandler) HandleWarning(Message) error             { return nil }
func (NopHandler) HandleError(Message) error               { return nil }
func (NopHandler) HandleUnknown(Unknown) error             { return nil }

var _ Handler = NopHandler{}

// Dispatch calls the handler method for event's kind.
func Dispatch(handler Handler, event Event) error {
	switch event := event.(type) {
	case TotalEdges:
		return handler.HandleTotalEdges(event)
	case BuildStarted:
		return handler.HandleBuildStarted(event)
	case BuildFinished:
		return handler.HandleBuildFinished(event)
	case EdgeStarted:
		return handler.HandleEdgeStarted(event)
	case EdgeFinished:
		return handler.HandleEdgeFinished(event)
	case Message:
		switch event.Kind {
		case MessageWarning:
			return handler.HandleWarning(event)
		case MessageError:
			return handler.HandleError(event)
		default:
			return handler.HandleInfo(event)
		}
	case Unknown:
		return handler.HandleUnknown(event)
	default:
		return fmt.Errorf("frontend: no handler method for %T", event)
	}
}
