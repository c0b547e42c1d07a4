// Package rules provides the built-in validation rules.
//
// Each rule registers itself with the lint registry from an init function.
// Import the package for its side effect and call Service.UseRegistered:
//
//	import _ "github.com/leapstack-labs/sqlassist/pkg/lint/rules"
//
// Rules read the text through the forgiving tokenizer, so they also report
// on statements the grammar engine rejected.
package rules
