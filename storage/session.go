package storage

import (
	"encoding/json"
	"time"

	"github.com/gomodule/redigo/redis"
	log "github.com/sirupsen/logrus"

	"github.com/tilegrid/sudoku/grid"
)

// A Session tracks a user's current step in the solution of
// their current puzzle.  Behind the scenes, we persist all the
// prior steps the user has taken in this solution, so they can
// go back (undo) prior choices.
type Session struct {
	// these elements are persisted in the session hash
	SID     string // session ID
	PID     string // ID of puzzle being solved
	Step    int    // current step
	Created string // RFC3339 time when the session was created
	Saved   string // RFC3339 time when the session was last saved

	// these elements are persisted in the steps, serialized as JSON
	Summary *grid.Summary `redis:"-"` // summary upon arriving at current step
	Grid    *grid.Grid    `redis:"-"` // grid for current step
}

// LoadSession returns the session with the given ID, restoring
// its current step from the cache.  Unknown IDs get a fresh
// session started on the default puzzle.
func LoadSession(sid string) *Session {
	session := &Session{SID: sid}
	if session.Lookup() {
		session.LoadStep()
		return session
	}
	session.Created = time.Now().Format(time.RFC3339)
	session.StartPuzzle(DefaultPuzzleId)
	return session
}

/*

session manipulation

*/

// StartPuzzle: set the puzzle ID for the current session and
// clear any existing solver steps.  If the given puzzle ID is
// empty, restart the session's current puzzle.  Unknown puzzle
// IDs fall back to the default puzzle.
func (session *Session) StartPuzzle(pid string) {
	// change to the given pid, making sure it's valid
	if pid == "" {
		pid = session.PID
	}
	pe, ok := lookupPuzzleEntry(pid)
	if !ok {
		pid = DefaultPuzzleId
		pe = loadPuzzleEntry(pid)
	}
	session.PID = pid
	summary := pe.summary()
	session.Summary = &summary
	session.Grid = pe.makeGrid()

	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step = 1
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("DEL", session.stepsKey())
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		return
	}
	rdExecute(body)
	log.WithFields(log.Fields{
		"session": session.SID, "puzzle": session.PID,
	}).Info("reset session to puzzle start")
}

// AddStep: record the current grid as a new step.  Callers
// mutate session.Grid (usually through Assign) and then call
// AddStep to persist the result.
func (session *Session) AddStep() {
	summary := session.Grid.Summary()
	session.Summary = &summary

	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step++
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		return
	}
	rdExecute(body)
	log.WithFields(log.Fields{
		"session": session.SID, "puzzle": session.PID, "step": session.Step,
	}).Debug("added step")
}

// RemoveStep: remove the last step and restore the prior step's
// grid.
func (session *Session) RemoveStep() {
	if session.Step <= 1 {
		// nothing to undo
		return
	}

	var bytes []byte
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step--
	session.Summary = nil
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("LTRIM", session.stepsKey(), 0, -2)
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
	log.WithFields(log.Fields{
		"session": session.SID, "puzzle": session.PID, "step": session.Step,
	}).Debug("reverted step")
}

// RemoveAllSteps: remove all the steps and restore the puzzle to
// its starting point.
func (session *Session) RemoveAllSteps() {
	if session.Step <= 1 {
		// nothing to undo
		return
	}

	var bytes []byte
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step = 1
	session.Summary = nil
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("LTRIM", session.stepsKey(), 0, 0)
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), 0))
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
	log.WithFields(log.Fields{
		"session": session.SID, "puzzle": session.PID,
	}).Info("reverted session to puzzle start")
}

// Lookup: find the saved hash for this session's ID.  Returns
// whether there is one.
func (session *Session) Lookup() (found bool) {
	body := func(tx redis.Conn) error {
		vals, err := redis.Values(tx.Do("HGETALL", session.key()))
		if len(vals) > 0 {
			if err := redis.ScanStruct(vals, session); err != nil {
				return err
			}
			found = true
			return nil
		}
		return err
	}
	rdExecute(body)
	return
}

// LoadStep: load the current step from the cached step list.
func (session *Session) LoadStep() {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
}

/*

serialization of grid state into and out of the cache

*/

// marshalStep - get JSON for the current step
func (session *Session) marshalStep() []byte {
	bytes, err := json.Marshal(session.Summary)
	if err != nil {
		log.WithFields(log.Fields{
			"session": session.SID, "puzzle": session.PID, "step": session.Step,
		}).Errorf("failed to marshal step summary: %v", err)
		panic(err)
	}
	return bytes
}

// unmarshalStep - restore the grid for a saved step
func (session *Session) unmarshalStep(bytes []byte) {
	var summary *grid.Summary
	err := json.Unmarshal(bytes, &summary)
	if err != nil {
		log.WithFields(log.Fields{
			"session": session.SID, "puzzle": session.PID, "step": session.Step,
		}).Errorf("failed to unmarshal saved step: %v", err)
		panic(err)
	}
	session.Summary = summary
	session.Grid, err = grid.NewFromSummary(*summary)
	if err != nil {
		log.WithFields(log.Fields{
			"session": session.SID, "puzzle": session.PID, "step": session.Step,
		}).Errorf("failed to rebuild grid for saved step: %v", err)
		panic(err)
	}
}

/*

session key generation

*/

// key - returns the session hash key
func (session *Session) key() string {
	return "SID:" + session.SID
}

// stepsKey - returns the key for the session's step list
func (session *Session) stepsKey() string {
	return session.key() + ":Steps"
}
