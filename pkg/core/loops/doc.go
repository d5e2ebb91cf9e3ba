// Package loops decomposes a pair table into an ordered tree of loops.
//
// A loop is a maximal circular arrangement of bases bounded by zero or one
// enclosing pair and zero or more directly nested child pairs. The external
// loop (index 0) is the root; every other loop is created by exactly one
// pair. The decomposition also assigns each strand break (nick) to the one
// loop whose circle it interrupts.
//
// The ordering of the returned slice is a canonicalization rule, not an
// implementation detail: downstream neighbor lookups and angle assignment
// depend on exact loop indices. At the external level the first child pair
// is expanded depth-first before any sibling; remaining siblings are all
// enumerated in sequence order and then expanded in reverse. Every internal
// level enumerates its children in sequence order and expands their
// subtrees in reverse, driven by an explicit LIFO stack so that deeply
// nested stems cannot exhaust the call stack.
package loops
