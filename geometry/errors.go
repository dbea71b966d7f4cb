package geometry

import "fmt"

// ContractViolation is the panic value raised when the kernel is handed input
// that a correct grid builder never produces: an unsupported spatial
// dimension, a 2D edge without exactly two nodes, malformed ragged arrays,
// out-of-range indices or output arrays of the wrong size.
//
// It is not a recoverable error path. Callers that want to turn it into an
// error at an API boundary can recover and use errors.As.
type ContractViolation struct {
	Op     string
	Detail string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("geometry: %s: contract violation: %s", e.Op, e.Detail)
}

func violate(op, format string, args ...interface{}) {
	panic(&ContractViolation{Op: op, Detail: fmt.Sprintf(format, args...)})
}
