package dialect

// FunctionCategory classifies SQL functions by their purpose.
type FunctionCategory string

// FunctionCategory constants for SQL function classification.
const (
	CategoryAggregate   FunctionCategory = "aggregate"
	CategoryWindow      FunctionCategory = "window"
	CategoryNumeric     FunctionCategory = "numeric"
	CategoryString      FunctionCategory = "string"
	CategoryDate        FunctionCategory = "date"
	CategoryConversion  FunctionCategory = "conversion"
	CategoryConditional FunctionCategory = "conditional"
	CategoryJSON        FunctionCategory = "json"
	CategoryArray       FunctionCategory = "array"
	CategoryTable       FunctionCategory = "table"
	CategoryUtility     FunctionCategory = "utility"
)

// Function describes a SQL function for completion and documentation.
type Function struct {
	Name        string           // Function name (e.g., "COUNT")
	Signature   string           // Full signature (e.g., "COUNT(expr) -> bigint")
	Description string           // Brief description
	Category    FunctionCategory // Function category
	Aggregate   bool             // True if this is an aggregate function
	Snippet     string           // Snippet for insertion (e.g., "COUNT($1)")
}

// StandardFunctions is the ANSI core shared by every built-in dialect.
var StandardFunctions = []Function{
	// aggregates
	{Name: "COUNT", Signature: "COUNT(expr) -> bigint", Description: "Count non-null values", Category: CategoryAggregate, Aggregate: true, Snippet: "COUNT($1)"},
	{Name: "SUM", Signature: "SUM(expr) -> numeric", Description: "Sum of all values", Category: CategoryAggregate, Aggregate: true, Snippet: "SUM($1)"},
	{Name: "AVG", Signature: "AVG(expr) -> double", Description: "Average of all values", Category: CategoryAggregate, Aggregate: true, Snippet: "AVG($1)"},
	{Name: "MIN", Signature: "MIN(expr) -> same", Description: "Minimum value", Category: CategoryAggregate, Aggregate: true, Snippet: "MIN($1)"},
	{Name: "MAX", Signature: "MAX(expr) -> same", Description: "Maximum value", Category: CategoryAggregate, Aggregate: true, Snippet: "MAX($1)"},
	{Name: "STDDEV", Signature: "STDDEV(expr) -> double", Description: "Sample standard deviation", Category: CategoryAggregate, Aggregate: true, Snippet: "STDDEV($1)"},
	{Name: "VARIANCE", Signature: "VARIANCE(expr) -> double", Description: "Sample variance", Category: CategoryAggregate, Aggregate: true, Snippet: "VARIANCE($1)"},

	// window
	{Name: "ROW_NUMBER", Signature: "ROW_NUMBER() OVER (...) -> bigint", Description: "Sequential row number within the partition", Category: CategoryWindow, Snippet: "ROW_NUMBER() OVER ($1)"},
	{Name: "RANK", Signature: "RANK() OVER (...) -> bigint", Description: "Rank with gaps", Category: CategoryWindow, Snippet: "RANK() OVER ($1)"},
	{Name: "DENSE_RANK", Signature: "DENSE_RANK() OVER (...) -> bigint", Description: "Rank without gaps", Category: CategoryWindow, Snippet: "DENSE_RANK() OVER ($1)"},
	{Name: "NTILE", Signature: "NTILE(n) OVER (...) -> bigint", Description: "Bucket number from 1 to n", Category: CategoryWindow, Snippet: "NTILE($1) OVER ($2)"},
	{Name: "LAG", Signature: "LAG(expr, offset, default) OVER (...)", Description: "Value from a preceding row", Category: CategoryWindow, Snippet: "LAG($1) OVER ($2)"},
	{Name: "LEAD", Signature: "LEAD(expr, offset, default) OVER (...)", Description: "Value from a following row", Category: CategoryWindow, Snippet: "LEAD($1) OVER ($2)"},
	{Name: "FIRST_VALUE", Signature: "FIRST_VALUE(expr) OVER (...)", Description: "First value in the window frame", Category: CategoryWindow, Snippet: "FIRST_VALUE($1) OVER ($2)"},
	{Name: "LAST_VALUE", Signature: "LAST_VALUE(expr) OVER (...)", Description: "Last value in the window frame", Category: CategoryWindow, Snippet: "LAST_VALUE($1) OVER ($2)"},

	// conditional
	{Name: "COALESCE", Signature: "COALESCE(expr, ...) -> same", Description: "First non-null argument", Category: CategoryConditional, Snippet: "COALESCE($1, $2)"},
	{Name: "NULLIF", Signature: "NULLIF(a, b) -> same", Description: "NULL if a equals b, otherwise a", Category: CategoryConditional, Snippet: "NULLIF($1, $2)"},

	// conversion
	{Name: "CAST", Signature: "CAST(expr AS type)", Description: "Convert a value to another type", Category: CategoryConversion, Snippet: "CAST($1 AS $2)"},

	// string
	{Name: "UPPER", Signature: "UPPER(string) -> varchar", Description: "Convert to uppercase", Category: CategoryString, Snippet: "UPPER($1)"},
	{Name: "LOWER", Signature: "LOWER(string) -> varchar", Description: "Convert to lowercase", Category: CategoryString, Snippet: "LOWER($1)"},
	{Name: "TRIM", Signature: "TRIM(string) -> varchar", Description: "Remove leading and trailing whitespace", Category: CategoryString, Snippet: "TRIM($1)"},
	{Name: "LENGTH", Signature: "LENGTH(string) -> bigint", Description: "Number of characters", Category: CategoryString, Snippet: "LENGTH($1)"},
	{Name: "SUBSTRING", Signature: "SUBSTRING(string, start, length) -> varchar", Description: "Extract part of a string", Category: CategoryString, Snippet: "SUBSTRING($1, $2, $3)"},
	{Name: "REPLACE", Signature: "REPLACE(string, from, to) -> varchar", Description: "Replace every occurrence of a substring", Category: CategoryString, Snippet: "REPLACE($1, $2, $3)"},
	{Name: "CONCAT", Signature: "CONCAT(string, ...) -> varchar", Description: "Concatenate strings", Category: CategoryString, Snippet: "CONCAT($1, $2)"},

	// numeric
	{Name: "ABS", Signature: "ABS(x) -> numeric", Description: "Absolute value", Category: CategoryNumeric, Snippet: "ABS($1)"},
	{Name: "ROUND", Signature: "ROUND(x, digits) -> numeric", Description: "Round to the given number of decimals", Category: CategoryNumeric, Snippet: "ROUND($1, $2)"},
	{Name: "CEIL", Signature: "CEIL(x) -> numeric", Description: "Round up", Category: CategoryNumeric, Snippet: "CEIL($1)"},
	{Name: "FLOOR", Signature: "FLOOR(x) -> numeric", Description: "Round down", Category: CategoryNumeric, Snippet: "FLOOR($1)"},
	{Name: "MOD", Signature: "MOD(a, b) -> numeric", Description: "Remainder of a divided by b", Category: CategoryNumeric, Snippet: "MOD($1, $2)"},

	// date
	{Name: "CURRENT_DATE", Signature: "CURRENT_DATE -> date", Description: "Current date", Category: CategoryDate, Snippet: "CURRENT_DATE"},
	{Name: "CURRENT_TIMESTAMP", Signature: "CURRENT_TIMESTAMP -> timestamp", Description: "Current date and time", Category: CategoryDate, Snippet: "CURRENT_TIMESTAMP"},
	{Name: "EXTRACT", Signature: "EXTRACT(part FROM date) -> bigint", Description: "Extract a date part", Category: CategoryDate, Snippet: "EXTRACT($1 FROM $2)"},
}
