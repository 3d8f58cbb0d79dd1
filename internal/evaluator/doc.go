// Package evaluator runs a CycleAnalysis document end to end.
//
// The evaluator follows a pipeline pattern:
//
//	Defaults → Cycle specs → Solve (parallel) → Entropy analysis → Average → Status
//	(internal/config)       (pkg/core)          (pkg/entropy)
//
// Operating conditions are independent, so they are solved concurrently with a bounded
// errgroup. The first failure cancels the remaining work and the document status reports it:
// no partial results are returned.
//
// Example usage:
//
//	ev := evaluator.New(pengrobinson.NewProvider(), evaluator.Options{
//	    Workers:  4,
//	    Defaults: defaults,
//	    Recorder: recorder,
//	})
//
//	out, err := ev.Evaluate(ctx, doc)
//	if err != nil {
//	    // out.Status.Conditions explains which stage failed
//	    return err
//	}
//	fmt.Println(out.Status.Average.ThermodynamicPerfection)
//
// Condition types written to the status:
//   - Solved: every operating condition produced a cycle
//   - Analyzed: the entropy analysis of every condition succeeded and was averaged
package evaluator
