package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BufferWrite describes a single GPU buffer write operation targeting a uniform binding
// on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Target resolves the buffer the write goes to.
//
// Returns:
//   - *wgpu.Buffer: the destination buffer, or nil when the provider or binding is missing
func (w BufferWrite) Target() *wgpu.Buffer {
	if w.Provider == nil || len(w.Data) == 0 {
		return nil
	}
	return w.Provider.Buffer(w.Binding)
}
