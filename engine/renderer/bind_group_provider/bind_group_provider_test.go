package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderIsEmpty(t *testing.T) {
	p := NewBindGroupProvider(WithLabel("Quad"))
	assert.Equal(t, "Quad", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.IndexCount())
	assert.False(t, p.Drawable())
}

func TestReleaseOnEmptyProvider(t *testing.T) {
	p := NewBindGroupProvider()
	p.SetIndexCount(6)
	assert.NotPanics(t, p.Release)
	assert.NotPanics(t, p.Release)
	assert.Zero(t, p.IndexCount())
	assert.False(t, p.Drawable(), "index count alone is not drawable")
}

func TestBufferWriteTarget(t *testing.T) {
	p := NewBindGroupProvider()
	assert.Nil(t, BufferWrite{Provider: p, Binding: 0, Data: []byte{1}}.Target(), "unset binding")
	assert.Nil(t, BufferWrite{Binding: 0, Data: []byte{1}}.Target(), "no provider")
	assert.Nil(t, BufferWrite{Provider: p, Binding: 0}.Target(), "empty data")
}
