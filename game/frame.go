package game

// FrameInfo describes the tick currently being dispatched.
type FrameInfo struct {
	Number    uint64
	DeltaTime float64
	// FixedDeltaTime is the step of the FixedFrame pass, in seconds.
	FixedDeltaTime float64
}
