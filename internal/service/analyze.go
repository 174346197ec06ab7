package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

const (
	// DefaultQueryLimit is the console's row cap when none is requested.
	DefaultQueryLimit = 1000
	// MaxQueryLimit caps any requested console row limit.
	MaxQueryLimit = 10000
)

// AnalyzeService runs the SQL console: the EXPLAIN tabs and guarded ad-hoc
// execution against the monitored server.
type AnalyzeService struct {
	repo domain.AnalyzeRepository
}

func NewAnalyzeService(repo domain.AnalyzeRepository) *AnalyzeService {
	return &AnalyzeService{repo: repo}
}

// Explain returns the requested EXPLAIN variant's output lines.
func (s *AnalyzeService) Explain(ctx context.Context, kind domain.ExplainType, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrValidation("query is required")
	}
	if !kind.Valid() {
		return nil, domain.ErrValidation("unknown explain type %q", kind)
	}
	return s.repo.Explain(ctx, kind, query)
}

// Execute runs a console statement with the destructive-statement guard and
// a server-side row cap applied.
func (s *AnalyzeService) Execute(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, domain.ErrValidation("query is required")
	}
	if kw, blocked := destructiveKeyword(query); blocked {
		return nil, domain.ErrRejected("%s statements are not allowed from the console", kw)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}
	return s.repo.Execute(ctx, query, limit)
}

// destructiveKeywords are the statement-leading keywords the console refuses
// to run. ALTER covers the mutation forms (ALTER TABLE ... DELETE/UPDATE)
// along with the rest of its DDL surface.
var destructiveKeywords = map[string]bool{
	"ALTER":    true,
	"ATTACH":   true,
	"CREATE":   true,
	"DELETE":   true,
	"DETACH":   true,
	"DROP":     true,
	"GRANT":    true,
	"INSERT":   true,
	"KILL":     true,
	"OPTIMIZE": true,
	"RENAME":   true,
	"REVOKE":   true,
	"SET":      true,
	"SYSTEM":   true,
	"TRUNCATE": true,
}

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`--[^\n]*`)
	firstWord    = regexp.MustCompile(`[A-Za-z_]+`)
)

// destructiveKeyword reports the first blocked statement keyword in sql.
// Only each statement's leading keyword is inspected, so SELECTs that merely
// mention a blocked word in a literal or in a system table name pass. A
// semicolon inside a string literal can split a statement and trip the guard
// on its tail; the guard errs toward refusing.
func destructiveKeyword(sql string) (string, bool) {
	stripped := blockComment.ReplaceAllString(sql, " ")
	stripped = lineComment.ReplaceAllString(stripped, " ")
	for _, stmt := range strings.Split(stripped, ";") {
		word := strings.ToUpper(firstWord.FindString(stmt))
		if word == "" {
			continue
		}
		if destructiveKeywords[word] {
			return word, true
		}
	}
	return "", false
}
