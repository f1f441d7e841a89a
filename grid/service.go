package grid

import (
	"encoding/json"
	"fmt"
	"net/http"
)

/*

RESTful wrappers

These handlers put a JSON face on grids so a web service can be
built over them without re-encoding the model.  Each handler
both answers the client and returns the interesting value (or
error) to the golang caller, so the caller always knows what the
client was told.

*/

// The State of a grid is what a client needs to render and
// reason about it: the geometry's alphabet, the current row
// strings, and the two independent status flags.
type State struct {
	Alphabet   string   `json:"alphabet"`
	Rows       []string `json:"rows"`
	Complete   bool     `json:"complete"`
	Consistent bool     `json:"consistent"`
}

// state assembles the grid's State.
func (g *Grid) state() State {
	return State{
		Alphabet:   g.geo.alphabet,
		Rows:       g.Rows(),
		Complete:   g.IsComplete(),
		Consistent: g.IsConsistent(),
	}
}

// A SolveResult reports the outcome of a solve request.  Rows is
// present only on success.
type SolveResult struct {
	Solved bool     `json:"solved"`
	Rows   []string `json:"rows,omitempty"`
}

// NewHandler is a POST handler that reads a JSON-encoded Summary
// from the request body and builds a grid from it.  The new
// grid's State is sent as a 200 response and the grid itself is
// returned to the golang caller.  Bad summaries get a 400
// response, and the error comes back to the caller too.
func NewHandler(w http.ResponseWriter, r *http.Request) (*Grid, error) {
	var summary Summary
	if e := json.NewDecoder(r.Body).Decode(&summary); e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	g, e := NewFromSummary(summary)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"NewHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	return g, g.StateHandler(w, r)
}

// StateHandler responds with the grid's State.
func (g *Grid) StateHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(g.state(), http.StatusOK, w, r)
}

// AssignHandler is a POST handler that applies a posted Choice
// to the grid.  The poster and the caller both get the grid's
// resulting State (or the error).
func (g *Grid) AssignHandler(w http.ResponseWriter, r *http.Request) error {
	var choice Choice
	if e := json.NewDecoder(r.Body).Decode(&choice); e != nil {
		return writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	if e := g.Assign(choice); e != nil {
		err, ok := e.(Error)
		if !ok {
			return writeError(errorFormatError, ErrorData{"AssignHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return writeJSON(err, http.StatusBadRequest, w, r)
	}
	return g.StateHandler(w, r)
}

// SolveHandler responds with a SolveResult for the grid.  The
// search runs on a copy, so the grid the client is working on is
// not modified.
func (g *Grid) SolveHandler(w http.ResponseWriter, r *http.Request) error {
	work, e := NewFromSummary(g.Summary())
	if e != nil {
		// a live grid always has a valid summary
		return writeError(errorFormatError, ErrorData{"SolveHandler", e.Error()}, w, r)
	}
	result := SolveResult{Solved: work.Solve()}
	if result.Solved {
		result.Rows = work.Rows()
	}
	return writeJSON(result, http.StatusOK, w, r)
}

/*

Utilities

*/

type handlerError int

const (
	requestDecodingError handlerError = iota
	responseEncodingError
	errorFormatError
)

// writeError sends back a server error of the given type, sort
// of like http.Error, but it sends the JSON form of an
// appropriate Error.
func writeError(et handlerError, ed ErrorData, w http.ResponseWriter, r *http.Request) error {
	var err Error
	var status int
	switch et {
	case requestDecodingError:
		status = http.StatusBadRequest
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeStructure,
			Attribute: DecodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case responseEncodingError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: EncodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	default:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	}
	err.Message = err.Error()
	return writeJSON(err, status, w, r)
}

// writeJSON encodes and sends the client response.  It returns
// the appropriate error for the handler to hand back to its
// caller: the encoding failure if one happened, the Error being
// sent if the response is an Error, nil otherwise.
func writeJSON(obj interface{}, status int, w http.ResponseWriter, r *http.Request) error {
	err, isErr := obj.(Error)
	bytes, e := json.Marshal(obj)
	if e != nil {
		if isErr && err.Scope == InternalScope && err.Attribute == EncodeAttribute {
			// We just failed to encode an encoding error, which
			// means the JSON encoder itself is in trouble.
			// Pseudo-encode the error by hand as a quoted string.
			status = http.StatusInternalServerError
			bytes = []byte(fmt.Sprintf("%q", err.Error()))
		} else {
			return writeError(responseEncodingError, ErrorData{e.Error()}, w, r)
		}
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
	if isErr {
		return err
	}
	return nil
}
