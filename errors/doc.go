// Package errors provides structured error types for the chirotope module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a location path, the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindInvalidData).
//		Path("uniform_representatives_rank3_6elements.txt", "4").
//		Value('x').
//		Detail("unexpected character").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Capacity("basis count", 84, 64)
//	err := errors.OutOfRange(errors.PhaseLoad, path, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
