package arch

// ExecutionState is the (program counter, timestamp) pair threaded through the
// dispatch loop. Adapters produce the successor state during postprocessing;
// the loop reads it to know where to resume.
type ExecutionState struct {
	PC        uint32
	Timestamp uint32
}
