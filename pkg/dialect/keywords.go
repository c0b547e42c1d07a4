package dialect

// StandardKeywords is the keyword vocabulary shared by every dialect.
var StandardKeywords = []string{
	"SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "IN", "IS", "NULL",
	"LIKE", "BETWEEN", "EXISTS", "CASE", "WHEN", "THEN", "ELSE", "END",
	"AS", "DISTINCT", "ALL", "ANY", "SOME",
	"JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS", "NATURAL", "ON", "USING",
	"GROUP", "BY", "HAVING", "ORDER", "ASC", "DESC", "NULLS", "FIRST", "LAST",
	"LIMIT", "OFFSET", "FETCH", "UNION", "INTERSECT", "EXCEPT",
	"WITH", "RECURSIVE", "OVER", "PARTITION", "WINDOW", "ROWS", "RANGE",
	"INSERT", "INTO", "VALUES", "UPDATE", "SET", "DELETE",
	"CREATE", "TABLE", "VIEW", "INDEX", "DROP", "ALTER", "ADD", "COLUMN",
	"PRIMARY", "KEY", "FOREIGN", "REFERENCES", "UNIQUE", "DEFAULT", "CHECK", "CONSTRAINT",
	"TRUE", "FALSE", "CAST",
}
