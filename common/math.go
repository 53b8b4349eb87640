package common

import (
	"math"
	"unsafe"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Oscillate evaluates amplitude*sin(rate*(t+phase)) + offset.
// The result always lies in [offset-|amplitude|, offset+|amplitude|].
//
// Parameters:
//   - t: time in seconds
//   - rate: angular rate in radians per second
//   - phase: phase shift in seconds, applied before scaling by rate
//   - amplitude: peak deviation from offset
//   - offset: centre value
//
// Returns:
//   - float32: the oscillator value
func Oscillate(t, rate, phase, amplitude, offset float64) float32 {
	return float32(amplitude*math.Sin(rate*(t+phase)) + offset)
}
