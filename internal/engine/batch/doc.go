// Package batch drives ordered sequences of work items through a
// caller-supplied processing function, isolating per-item failures and
// tracking timing and progress. Key behaviors:
//   - Three error policies: continue (default), stop, abort
//   - One outcome per submitted item under continue, in submission order
//   - Fatal initialization/configuration errors always propagate
//   - Optional per-item timeout converted into a timeout outcome
//   - Progress tracking with callbacks for UI updates
//
// The runner never inspects work items or payloads; it only records what the
// processing function reports.
package batch
