// Package query is the wire model of query and answer streams.
//
// A query file is {"meta": ..., "events": [...]} where every event is a JSON
// object tagged by "type". DecodeEvent maps the tag onto one of the value
// types RemoveEdge, ModifyEdge, ShortestPath, KShortestPaths,
// KShortestPathsHeuristic, ApproxShortestPath, KNN and Assignment; an
// unrecognised tag decodes to Unknown so that a stream can still be replayed.
//
// An answer file is {"meta": ..., "results": [...]} with one Answer per event,
// in event order. The same Answer type serves produced answers, the subject's
// answers under verification, and the expected reference answers.
package query
