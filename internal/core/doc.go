// Package core provides dataset loading and CSV parsing.
//
// This package contains the domain logic independent of any transport: the
// HTTP server and the CLI both drive it through [Loader].
//
// # Loading
//
// [Loader.LoadAndParse] resolves a file name through an ordered chain of
// sources (see package source), then parses the text:
//
//	loader := core.NewLoader(source.Build(cfg.Source, assets.FS, nil), cfg.Source.MaxBytes)
//	table, err := loader.LoadAndParse(ctx, "cities.csv")
//	if errors.Is(err, core.ErrLoad) {
//	    // every source missed
//	}
//
// Nothing is cached between calls. Every load walks the chain again.
//
// # Parsing
//
// The parser is deliberately small and permissive:
//
//   - Lines are split on '\n'. Blank and whitespace-only lines are dropped.
//   - Fields are split on ',' outside double quotes and trimmed.
//   - A double quote only toggles quoting. It is never kept, and "" is not
//     an escaped quote.
//   - Quoting never spans lines.
//   - Malformed input is never an error.
//
// The first parsed line becomes [Table.Headers]. Rows are not padded or
// truncated to the header width.
//
// # Error Handling
//
// Load failures are [*LoadError] values. [MapError] turns any error into a
// coded [UserMessage] for display (SRC, NET, REQ and ERR000 codes).
package core
