// Package lint validates SQL text beyond what the grammar accepts.
//
// # Pipeline
//
// Service.Validate always parses first and reports grammar failures as
// syntax diagnostics. It then runs, in registration order:
//
//  1. Validators: receive the text, the parse tree and the schema.
//  2. Rules: receive the text, the diagnostics gathered so far and the
//     schema. Each rule is wrapped in a RuleEntry that can be disabled and
//     that supplies the diagnostic type for findings that leave it unset.
//
// A validator or rule that panics is logged and skipped; the others still
// run.
//
// # Rule Registration
//
// Built-in rules register themselves from init functions:
//
//	import _ "github.com/leapstack-labs/sqlassist/pkg/lint/rules"
//
//	svc := lint.New(p, lint.Options{Config: cfg})
//	if err := svc.UseRegistered(); err != nil { ... }
//
// Rules written as expressions live in package exprrule.
package lint
