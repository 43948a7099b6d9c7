// Package attributed implements a destructuring policy driven by struct tags.
//
// A policy decides, once per concrete type, whether values of that type are
// captured as a scalar, as a structure with selected fields, or left to the
// logger's default destructurer. The decision is compiled into an immutable
// Plan and cached for the lifetime of the policy; only level-gated field
// visibility is evaluated again on every call.
//
// # Tags
//
// Fields are annotated under the "log" key. The first element is the
// optional logged name, the rest are options:
//
//	type Order struct {
//	    ID       string
//	    Customer Customer `log:",scalar"`          // captured as-is, never expanded
//	    Cart     *Cart    `log:",scalar,mutable"`  // captured as its string form at log time
//	    Card     string   `log:"-"`                // never logged
//	    Trace    []Span   `log:",onlyat=Debug"`    // only when Debug events are enabled
//	    Notes    string   `log:"Remarks,notabove=Information"`
//	}
//
// Exclusion ("-" or the "ignore" option) always wins over any other option
// on the same field. Level thresholds accept the names understood by
// core.ParseLevel.
//
// A whole type is marked scalar with a tagged blank field, or registered
// with WithScalarType for types the caller does not own:
//
//	type Money struct {
//	    _        struct{} `log:",scalar,mutable"`
//	    Amount   int64
//	    Currency string
//	}
//
// Types without any recognized annotation are declined, so the default
// destructurer handles them exactly as it would without this policy.
//
// # Concurrency
//
// New returns a policy whose cache compiles each type exactly once, even
// under concurrent first use. NewConcurrent never waits on another
// goroutine's compilation; two goroutines racing on a new type may both
// compile it and the first insert wins.
package attributed
