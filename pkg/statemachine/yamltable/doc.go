// Package yamltable loads string-typed state machines from YAML documents.
//
// A definition names the initial state, the transition table and optional
// automatic (input-less) transitions:
//
//	initial: START
//	transitions:
//	  - {from: START, input: START_PROCESSING, to: PROCESSING}
//	  - {from: PROCESSING, input: FINISH_PROCESSING, to: COMPLETE}
//	automatic:
//	  - {from: COMPLETE, to: ARCHIVED}
//
// Use Load or Parse to read a definition and Definition.Machine to turn it
// into a *statemachine.Machine[string, string].
package yamltable
