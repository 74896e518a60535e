// Package schedule computes a deterministic timeline for a fixed-order,
// repeating multi-phase pipeline that shares equipment across cycles.
//
// The construction is greedy and single-pass:
//  1. lay out each cycle's ideal phase times so consecutive operations abut
//     with zero idle time (setup is back-solved from the operation boundary
//     and may start before the cycle's local zero),
//  2. compute the one global shift that delays the whole cycle just enough
//     for every step to wait out its previous cycle's cleaning,
//  3. emit the shifted intervals and record each step's new cleaning end.
//
// The result is a pure function of (plan, cycle count): no clocks, no
// randomness, no map-order dependence. It does not search for a minimal
// makespan and it never re-orders steps.
package schedule
