// Package pipeline streams FASTA records through a pool of lookup workers and
// hands per-record results back in input order.
//
// The only graph capability needed is graph.Graph (K and Find), which keeps the
// pipeline testable with fakes.
package pipeline
