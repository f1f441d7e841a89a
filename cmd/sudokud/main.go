// sudokud is a web service for solving sudoku grids.  Each
// browser gets a cookie-tracked session with a current puzzle
// and a history of solution steps, all persisted through the
// storage package so the server itself stays stateless.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/tilegrid/sudoku/grid"
	"github.com/tilegrid/sudoku/storage"
)

const (
	cookieName = "sudokuSessionID"
	cookiePath = "/api/"
)

var (
	startTime    = time.Now()
	sessionMutex sync.Mutex // serialize session step updates
	sidPattern   = regexp.MustCompile(`^[0-9a-z]{3,}$`)
)

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.  New IDs
// are based on the time since server start, so they are unique
// per server instance.
func getCookie(w http.ResponseWriter, r *http.Request) string {
	if sc, e := r.Cookie(cookieName); e == nil && sidPattern.MatchString(sc.Value) {
		return sc.Value
	}
	sid := strconv.FormatInt(int64(time.Now().Sub(startTime)), 36)
	sc := &http.Cookie{Name: cookieName, Value: sid, Path: cookiePath}
	http.SetCookie(w, sc)
	return sid
}

// apiHandler dispatches the /api/ routes against the request's
// session.  Storage failures panic out of the handlers, so they
// are caught here and turned into 500s.
func apiHandler(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("storage failure handling %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "storage failure", http.StatusInternalServerError)
		}
	}()

	// puzzle listing doesn't need a session
	if r.URL.Path == "/api/puzzles" {
		writeJSON(w, storage.PuzzleIds())
		return
	}

	sessionMutex.Lock()
	defer sessionMutex.Unlock()
	session := storage.LoadSession(getCookie(w, r))

	switch {
	case r.URL.Path == "/api/state":
		session.Grid.StateHandler(w, r)
	case r.URL.Path == "/api/assign" && r.Method == "POST":
		if e := session.Grid.AssignHandler(w, r); e == nil {
			session.AddStep()
		}
	case r.URL.Path == "/api/back":
		session.RemoveStep()
		session.Grid.StateHandler(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/reset"):
		pid := strings.TrimPrefix(r.URL.Path, "/api/reset")
		pid = strings.TrimPrefix(pid, "/")
		session.StartPuzzle(pid)
		session.Grid.StateHandler(w, r)
	case r.URL.Path == "/api/solve":
		solveHandler(session, w, r)
	default:
		http.NotFound(w, r)
	}
}

// solveHandler answers with a SolveResult for the session's
// current grid.  Solutions of untouched puzzles are cached, so
// repeat requests skip the search.
func solveHandler(session *storage.Session, w http.ResponseWriter, r *http.Request) {
	if session.Step == 1 {
		if rows, ok := storage.LoadSolution(session.PID); ok {
			writeJSON(w, grid.SolveResult{Solved: true, Rows: rows})
			return
		}
	}
	work, e := grid.NewFromSummary(session.Grid.Summary())
	if e != nil {
		panic(e)
	}
	result := grid.SolveResult{Solved: work.Solve()}
	if result.Solved {
		result.Rows = work.Rows()
		if session.Step == 1 {
			storage.SaveSolution(session.PID, result.Rows)
		}
	}
	writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, obj interface{}) {
	bytes, e := json.Marshal(obj)
	if e != nil {
		panic(e)
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(bytes)
}

func main() {
	// local dev configuration comes from a .env file, if present
	godotenv.Load()
	if level, e := log.ParseLevel(os.Getenv("LOG_LEVEL")); e == nil {
		log.SetLevel(level)
	}

	cid, dbid, err := storage.Connect()
	if err != nil {
		log.Fatalf("storage connection failure: %v", err)
	}
	defer storage.Close()
	log.WithFields(log.Fields{"cache": cid, "database": dbid}).Info("storage connected")

	http.HandleFunc("/api/", apiHandler)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/state", http.StatusFound)
	})

	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	log.Infof("listening on %s", port)
	if err := http.ListenAndServe(port, nil); err != nil {
		log.Fatalf("listener failure: %v", err)
	}
}
