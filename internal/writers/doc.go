// Package writers turns per-record lookup results into serialized output.
//
// Design:
//   - Writers own all presentation knowledge (text report, TSV, JSONL).
//   - The graph stays domain-only; the pipeline stays orchestration-only.
//   - JSONL goes through pkg/api (v1) for a stable wire format.
package writers
