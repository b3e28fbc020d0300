package main

import (
	"context"
	"encoding/gob"
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"masteryls"

	"github.com/gorilla/sessions"
)

// Server serves the parsed question bank to content authors for review
type Server struct {
	bank      *masteryls.Bank
	report    *masteryls.Report
	renderer  *masteryls.Renderer
	store     *sessions.CookieStore
	templates map[string]*template.Template
}

// ReviewState tracks which questions the author has marked as reviewed
type ReviewState struct {
	Reviewed map[string]bool `json:"reviewed"`
}

func init() {
	gob.Register(ReviewState{})
}

func main() {
	var (
		dir     = flag.String("dir", "", "Parse and serve this markdown corpus")
		dbPath  = flag.String("db", "", "Serve the bank stored in this sqlite database")
		port    = flag.String("port", "", "Listen port (default: PORT env var or 8180)")
		verbose = flag.Bool("verbose", false, "Enable verbose output")
	)

	flag.Parse()

	masteryls.SetVerbose(*verbose)

	if (*dir == "") == (*dbPath == "") {
		log.Fatal("Exactly one of -dir or -db is required.")
	}

	var (
		bank   *masteryls.Bank
		report *masteryls.Report
		err    error
	)
	if *dir != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		bank, report, err = masteryls.ParseCorpus(ctx, *dir, nil)
		if err != nil {
			log.Fatalf("Failed to parse corpus: %v", err)
		}
	} else {
		db, err := masteryls.OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.CloseDB()

		bank, err = db.LoadBank()
		if err != nil {
			log.Fatalf("Failed to load bank: %v", err)
		}
		report, err = db.LoadDiagnostics()
		if err != nil {
			log.Fatalf("Failed to load diagnostics: %v", err)
		}
	}

	// Initialize session store
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "masteryls-review-secret"
	}
	store := sessions.NewCookieStore([]byte(secret))

	// Load templates with custom functions
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"printf": fmt.Sprintf,
	}

	templates := make(map[string]*template.Template)
	templateFiles := []struct {
		name string
		file string
	}{
		{"home", "templates/home.html"},
		{"question", "templates/question.html"},
		{"diagnostics", "templates/diagnostics.html"},
	}

	for _, tmpl := range templateFiles {
		templates[tmpl.name] = template.Must(template.New(tmpl.name).Funcs(funcMap).ParseFiles("templates/base.html", tmpl.file))
	}

	server := &Server{
		bank:      bank,
		report:    report,
		renderer:  masteryls.NewRenderer(),
		store:     store,
		templates: templates,
	}

	// Setup routes
	http.HandleFunc("/", server.handleHome)
	http.HandleFunc("/question", server.handleQuestion)
	http.HandleFunc("/diagnostics", server.handleDiagnostics)

	listenPort := *port
	if listenPort == "" {
		listenPort = os.Getenv("PORT")
	}
	if listenPort == "" {
		listenPort = "8180"
	}

	log.Printf("Serving %d question(s) and %d diagnostic(s) on port %s", bank.Size(), len(report.Diagnostics), listenPort)
	log.Fatal(http.ListenAndServe(":"+listenPort, nil))
}

type fileGroup struct {
	File      string
	Questions []questionRow
}

type questionRow struct {
	Key      string
	Title    string
	Type     masteryls.QuestionType
	Line     int
	Reviewed bool
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	state := s.reviewState(r)

	// Group questions by source file, keeping bank order
	var groups []fileGroup
	byFile := make(map[string]int)
	reviewedCount := 0
	for _, q := range s.bank.Questions() {
		idx, ok := byFile[q.File]
		if !ok {
			idx = len(groups)
			byFile[q.File] = idx
			groups = append(groups, fileGroup{File: q.File})
		}
		reviewed := state.Reviewed[q.Key()]
		if reviewed {
			reviewedCount++
		}
		groups[idx].Questions = append(groups[idx].Questions, questionRow{
			Key:      q.Key(),
			Title:    q.Title,
			Type:     q.Type,
			Line:     q.Line,
			Reviewed: reviewed,
		})
	}

	err := s.templates["home"].ExecuteTemplate(w, "base.html", map[string]interface{}{
		"Groups":        groups,
		"Total":         s.bank.Size(),
		"ReviewedCount": reviewedCount,
		"DiagCount":     len(s.report.Diagnostics),
	})
	if err != nil {
		log.Printf("Template error in home: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	// Keys may contain / and # (fallback keys are file#ordinal), so the
	// key travels as a query parameter rather than a path segment
	key := r.URL.Query().Get("key")
	if key == "" {
		http.NotFound(w, r)
		return
	}

	question, ok := s.bank.Get(key)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodPost {
		// Toggle the reviewed mark for this question
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}

		session, _ := s.store.Get(r, "review-session")
		state := s.reviewState(r)
		state.Reviewed[key] = r.FormValue("reviewed") == "on"
		session.Values["state"] = state
		if err := session.Save(r, w); err != nil {
			log.Printf("Session save error: %v", err)
		}

		http.Redirect(w, r, "/question?key="+url.QueryEscape(key), http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := s.reviewState(r)
	rendered := s.renderer.RenderQuestion(question)

	err := s.templates["question"].ExecuteTemplate(w, "base.html", map[string]interface{}{
		"Question": question,
		"Rendered": rendered,
		"Key":      key,
		"Reviewed": state.Reviewed[key],
	})
	if err != nil {
		log.Printf("Template error in question: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	err := s.templates["diagnostics"].ExecuteTemplate(w, "base.html", map[string]interface{}{
		"Diagnostics": s.report.Diagnostics,
		"Counts":      s.report.CountByKind(),
	})
	if err != nil {
		log.Printf("Template error in diagnostics: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
}

// reviewState loads the author's review marks from the cookie session
func (s *Server) reviewState(r *http.Request) ReviewState {
	session, _ := s.store.Get(r, "review-session")
	if raw, ok := session.Values["state"]; ok {
		if state, ok := raw.(ReviewState); ok {
			if state.Reviewed == nil {
				state.Reviewed = make(map[string]bool)
			}
			return state
		}
	}
	return ReviewState{Reviewed: make(map[string]bool)}
}
