// Package errors provides structured error types for the interp-guard library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/interpreter type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseExpose, errors.KindTypeMismatch).
//		Path("native", "add").
//		GoType("chan int").
//		InterpType("number").
//		Detail("cannot pass a channel across the binding").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotAFunction(errors.PhaseWrap, "int")
//	err := errors.ArityLimit(errors.PhaseWrap, "func(int, int, int, int, int) int", 5)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
