// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import "fmt"

// Result is a compositor status code.
// Non-negative values are successes; negative values are errors.
type Result int32

const (
	// Success indicates the call completed without qualification.
	Success Result = 0

	// TimeoutExpired indicates a bounded wait elapsed before the resource
	// became available.
	TimeoutExpired Result = 1

	// SessionLossPending indicates the session will be lost soon.
	SessionLossPending Result = 3

	// SessionNotFocused indicates the frame was accepted but input is not
	// delivered to the application.
	SessionNotFocused Result = 8

	// FrameDiscarded indicates BeginFrame succeeded but the previous frame
	// was discarded by the compositor.
	FrameDiscarded Result = 9
)

const (
	// ErrorValidationFailure indicates a call parameter failed validation.
	ErrorValidationFailure Result = -1

	// ErrorRuntimeFailure indicates an unspecified runtime failure.
	ErrorRuntimeFailure Result = -2

	// ErrorOutOfMemory indicates the compositor ran out of memory.
	ErrorOutOfMemory Result = -3

	// ErrorHandleInvalid indicates an unknown or destroyed handle.
	ErrorHandleInvalid Result = -12

	// ErrorInstanceLost indicates the compositor instance is gone.
	ErrorInstanceLost Result = -13

	// ErrorSessionNotRunning indicates the session is not running.
	ErrorSessionNotRunning Result = -16

	// ErrorSessionLost indicates the session is gone.
	ErrorSessionLost Result = -17

	// ErrorTimeInvalid indicates a display time the compositor did not issue.
	ErrorTimeInvalid Result = -30

	// ErrorCallOrderInvalid indicates a call made out of protocol order.
	ErrorCallOrderInvalid Result = -37

	// ErrorLayerInvalid indicates a submitted layer is malformed.
	ErrorLayerInvalid Result = -39

	// ErrorSwapchainRectInvalid indicates a sub-image rect outside the image.
	ErrorSwapchainRectInvalid Result = -41

	// ErrorEnvironmentBlendModeUnsupported indicates an unsupported blend mode.
	ErrorEnvironmentBlendModeUnsupported Result = -42
)

// Succeeded reports whether r is a success code, qualified or not.
func (r Result) Succeeded() bool {
	return r >= 0
}

// String returns the symbolic name of the result.
func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case TimeoutExpired:
		return "TimeoutExpired"
	case SessionLossPending:
		return "SessionLossPending"
	case SessionNotFocused:
		return "SessionNotFocused"
	case FrameDiscarded:
		return "FrameDiscarded"
	case ErrorValidationFailure:
		return "ErrorValidationFailure"
	case ErrorRuntimeFailure:
		return "ErrorRuntimeFailure"
	case ErrorOutOfMemory:
		return "ErrorOutOfMemory"
	case ErrorHandleInvalid:
		return "ErrorHandleInvalid"
	case ErrorInstanceLost:
		return "ErrorInstanceLost"
	case ErrorSessionNotRunning:
		return "ErrorSessionNotRunning"
	case ErrorSessionLost:
		return "ErrorSessionLost"
	case ErrorTimeInvalid:
		return "ErrorTimeInvalid"
	case ErrorCallOrderInvalid:
		return "ErrorCallOrderInvalid"
	case ErrorLayerInvalid:
		return "ErrorLayerInvalid"
	case ErrorSwapchainRectInvalid:
		return "ErrorSwapchainRectInvalid"
	case ErrorEnvironmentBlendModeUnsupported:
		return "ErrorEnvironmentBlendModeUnsupported"
	default:
		return fmt.Sprintf("Result(%d)", int32(r))
	}
}

// Err returns nil for Success and a *ResultError carrying op otherwise.
// Qualified successes such as FrameDiscarded are reported as errors too;
// callers decide which codes are benign for the operation at hand.
func (r Result) Err(op Op) error {
	if r == Success {
		return nil
	}
	return &ResultError{Op: op, Result: r}
}

// ResultError is a non-Success result returned by a compositor operation.
type ResultError struct {
	Op     Op
	Result Result
}

// Error implements the error interface.
func (e *ResultError) Error() string {
	return fmt.Sprintf("compositor: %s: %s", e.Op, e.Result)
}

// Op identifies a compositor operation.
type Op uint8

const (
	OpWaitFrame Op = iota
	OpBeginFrame
	OpEndFrame
	OpAcquireImage
	OpWaitImage
	OpReleaseImage
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpWaitFrame:
		return "WaitFrame"
	case OpBeginFrame:
		return "BeginFrame"
	case OpEndFrame:
		return "EndFrame"
	case OpAcquireImage:
		return "AcquireImage"
	case OpWaitImage:
		return "WaitImage"
	case OpReleaseImage:
		return "ReleaseImage"
	default:
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
}
