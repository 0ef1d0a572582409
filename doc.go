// Package contracts computes the budget indicators of government procurement
// contracts: the value each contract weighs on a fiscal year, its budget
// commitments and the gap between them.
//
// The core is the fiscal-year value engine: ExerciseValue folds the
// value-changing amendments of a contract (consolidated by effective date,
// see Consolidate) over the twelve months of a year, prorating the partial
// months by days (Prorate). ExerciseTrace returns the same value with the
// step by step computation.
//
// Around it, the package normalizes the records served by the procurement
// registry (RawContract, RawEvent, RawCommitment), collects them (Registry)
// into a Snapshot stored as JSON files, and aggregates a snapshot into the
// financial Table and the executive Dashboard.
//
// The engine does no I/O and never fails: raw records are validated once by
// their Normalize methods, and a contract that cannot be normalized is
// reported apart without stopping the others.
package contracts
