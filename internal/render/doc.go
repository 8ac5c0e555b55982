// Package render presents per-run outcomes to the operator, either as a
// rounded terminal table or as one JSON document per run.
package render
