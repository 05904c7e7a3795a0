package queryspec

import "github.com/Zedyas/zen-data-explorer/internal/dataset"

// Filter is a single committed row filter.
type Filter struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Aggregation is one aggregate expression. Alias is optional; the effective
// alias is resolved by AggAlias.
type Aggregation struct {
	Op     string `json:"op"`
	Column string `json:"column"`
	Alias  string `json:"as,omitempty"`
}

// Having filters aggregated groups by a metric, which must be the alias of
// one of the spec's aggregations. Value is a float64 when the committed
// input parsed as a finite number, otherwise a string.
type Having struct {
	Metric   string `json:"metric"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Sort orders results by a column or aggregation alias.
type Sort struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

// Spec is the declarative table query contract between the UI and the
// external query engine. It is a plain value; all mutation helpers return a
// new Spec and never modify their input.
type Spec struct {
	Filters      []Filter      `json:"filters"`
	GroupBy      []string      `json:"groupBy"`
	Aggregations []Aggregation `json:"aggregations"`
	Having       []Having      `json:"having"`
	Sort         []Sort        `json:"sort"`
	Limit        int           `json:"limit"`
}

// Limit bounds enforced by ApplyLimitValue and Validate.
const (
	MinLimit     = 1
	MaxLimit     = 10000
	DefaultLimit = 200
)

// New returns an empty spec with the default limit.
func New() Spec {
	return Spec{Limit: DefaultLimit}
}

// AggOps maps supported aggregation ops to their SQL function names.
var AggOps = map[string]string{
	"count": "COUNT",
	"sum":   "SUM",
	"avg":   "AVG",
	"min":   "MIN",
	"max":   "MAX",
}

// FilterOperators lists the filter operators allowed per column type.
var FilterOperators = map[dataset.ColumnType][]string{
	dataset.TypeString:  {"=", "!=", "contains", "starts_with", "is_null", "is_not_null"},
	dataset.TypeInteger: {"=", "!=", ">", "<", ">=", "<=", "is_null", "is_not_null"},
	dataset.TypeFloat:   {"=", "!=", ">", "<", ">=", "<=", "is_null", "is_not_null"},
	dataset.TypeDate:    {"=", ">", "<", ">=", "<=", "is_null", "is_not_null"},
	dataset.TypeBoolean: {"=", "!=", "is_null", "is_not_null"},
}

// HavingOperators are the comparison operators allowed in having clauses.
var HavingOperators = []string{"=", "!=", ">", "<", ">=", "<="}

// IsNullTest reports whether op is a null-test operator, which never carries
// a value.
func IsNullTest(op string) bool {
	return op == "is_null" || op == "is_not_null"
}

func operatorAllowed(op string, t dataset.ColumnType) bool {
	ops, ok := FilterOperators[t]
	if !ok {
		ops = FilterOperators[dataset.TypeString]
	}
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

func havingOperatorAllowed(op string) bool {
	for _, o := range HavingOperators {
		if o == op {
			return true
		}
	}
	return false
}
