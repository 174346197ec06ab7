package domain

// ExplainType is one of the analysis tabs of the SQL console.
type ExplainType string

const (
	ExplainPlan     ExplainType = "plan"
	ExplainIndexes  ExplainType = "indexes"
	ExplainPipeline ExplainType = "pipeline"
	ExplainAST      ExplainType = "ast"
	ExplainSyntax   ExplainType = "syntax"
	ExplainEstimate ExplainType = "estimate"
)

// ExplainTypes lists the analysis tabs in display order.
var ExplainTypes = []ExplainType{
	ExplainPlan, ExplainIndexes, ExplainPipeline,
	ExplainAST, ExplainSyntax, ExplainEstimate,
}

// Valid reports whether t names a known explain variant.
func (t ExplainType) Valid() bool {
	for _, known := range ExplainTypes {
		if t == known {
			return true
		}
	}
	return false
}

// QueryRequest is the body of an execute or explain call.
type QueryRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// QueryResult carries the outcome of a console query.
type QueryResult struct {
	Columns  []ColumnMeta `json:"columns"`
	Data     []Row        `json:"data"`
	RowCount int          `json:"rowCount"`
	Duration float64      `json:"duration"` // milliseconds
}
