package wasm

import (
	"fmt"
	"time"
)

// CompilationError occurs when Wasm module compilation fails
type CompilationError struct {
	ModuleName string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("failed to compile Wasm module '%s': %v", e.ModuleName, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// InstantiationError occurs when module instantiation fails
type InstantiationError struct {
	ModuleName string
	InstanceID string
	Err        error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate module '%s' (instance: %s): %v",
		e.ModuleName, e.InstanceID, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// ModuleNotFoundError occurs when a module is not in cache
type ModuleNotFoundError struct {
	ModuleName string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module '%s' not found in cache", e.ModuleName)
}

// MissingExportError occurs when a module lacks an export the host relies on,
// such as the allocator pair or its memory.
type MissingExportError struct {
	ModuleName string
	Export     string
}

func (e *MissingExportError) Error() string {
	return fmt.Sprintf("module '%s' is missing export '%s'", e.ModuleName, e.Export)
}

// SignatureError occurs when an export does not take one i32 pointer per
// declared input and output.
type SignatureError struct {
	FunctionName string
	Want         int
	Got          int
	Reason       string
}

func (e *SignatureError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("export '%s' has an unsupported signature: %s", e.FunctionName, e.Reason)
	}
	return fmt.Sprintf("export '%s' takes %d parameters, call supplies %d pointers",
		e.FunctionName, e.Got, e.Want)
}

// NullOutputError occurs when an export leaves a variable-size output slot
// without a heap pointer.
type NullOutputError struct {
	FunctionName string
	Index        int
}

func (e *NullOutputError) Error() string {
	return fmt.Sprintf("export '%s' left output %d unset", e.FunctionName, e.Index)
}

// InstanceLimitError occurs when the runtime already holds its maximum
// number of live instances.
type InstanceLimitError struct {
	Limit int
}

func (e *InstanceLimitError) Error() string {
	return fmt.Sprintf("instance limit reached (%d live instances)", e.Limit)
}

// MemoryAccessError occurs when memory operations fail
type MemoryAccessError struct {
	Operation string
	Address   uint32
	Length    uint32
	Err       error
}

func (e *MemoryAccessError) Error() string {
	return fmt.Sprintf("memory access failed (op=%s, addr=%d, len=%d): %v",
		e.Operation, e.Address, e.Length, e.Err)
}

func (e *MemoryAccessError) Unwrap() error {
	return e.Err
}

// HostFunctionError occurs when host function setup fails
type HostFunctionError struct {
	FunctionName string
	Err          error
}

func (e *HostFunctionError) Error() string {
	return fmt.Sprintf("host function '%s' failed: %v", e.FunctionName, e.Err)
}

func (e *HostFunctionError) Unwrap() error {
	return e.Err
}

// TimeoutError occurs when an export call runs past the configured call timeout
type TimeoutError struct {
	FunctionName string
	Duration     time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("export '%s' timed out after %v", e.FunctionName, e.Duration)
}
