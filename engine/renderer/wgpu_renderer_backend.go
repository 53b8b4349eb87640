package renderer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-responsive/common"
	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-responsive/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// quadVertex is one vertex of the quad: position followed by colour.
type quadVertex struct {
	Position [3]float32
	Color    [3]float32
}

// quadUniforms mirrors the Uniforms struct in quad.wgsl, padded to 16 bytes.
type quadUniforms struct {
	Modifier float32
	_        [3]float32
}

var quadVertices = []quadVertex{
	{Position: [3]float32{0.5, 0.5, 0.0}, Color: [3]float32{1.0, 0.0, 0.0}},   // top right
	{Position: [3]float32{0.5, -0.5, 0.0}, Color: [3]float32{0.0, 1.0, 0.0}},  // bottom right
	{Position: [3]float32{-0.5, -0.5, 0.0}, Color: [3]float32{0.0, 0.0, 1.0}}, // bottom left
	{Position: [3]float32{-0.5, 0.5, 0.0}, Color: [3]float32{0.0, 1.0, 0.0}},  // top left
}

var quadIndices = []uint32{
	0, 1, 2, // first triangle
	0, 2, 3, // second triangle
}

// fenceDrainTimeout bounds how long Release waits for outstanding fence polls.
const fenceDrainTimeout = time.Second

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat     *wgpu.TextureFormat
	surfaceConfigured bool
	presentMode       wgpu.PresentMode
	clearColor        wgpu.Color

	quadPipeline *wgpu.RenderPipeline
	quad         bind_group_provider.BindGroupProvider
	uniforms     quadUniforms

	// Frame state between BeginFrame and Present.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	// fences tracks device polls still running on helper goroutines.
	fences sync.WaitGroup
}

type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling Configure on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	// A zero width or height leaves the surface unconfigured until the next non-zero size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface reports no usable format
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterQuadPipeline compiles the quad program and creates its render pipeline.
	//
	// Parameters:
	//   - vertexShader: the vertex stage
	//   - fragmentShader: the fragment stage
	//
	// Returns:
	//   - error: an error if compilation or pipeline creation fails
	RegisterQuadPipeline(vertexShader, fragmentShader shader.Shader) error

	// InitQuad uploads the quad geometry and creates its uniform bind group.
	//
	// Returns:
	//   - error: an error if buffer or bind group creation fails
	InitQuad() error

	// BeginFrame acquires the swapchain texture and begins the main render pass, which clears
	// the target to the clear colour.
	//
	// Returns:
	//   - error: ErrSurfaceUnavailable, ErrFrameInFlight, or a GPU error
	BeginFrame() error

	// DrawQuad uploads the modifier uniform and encodes the quad draw. Without a valid pipeline
	// only the clear is recorded.
	//
	// Parameters:
	//   - modifier: the animation modifier uniform
	DrawQuad(modifier float32)

	// EndFrame ends the render pass and submits the command buffer.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the acquired surface texture and releases the frame references.
	Present()

	// InsertFence returns a fence that signals when all submitted work has completed.
	InsertFence() Fence

	// ReleaseFrame drops any frame state still held, without presenting.
	ReleaseFrame()

	// Release destroys every GPU object owned by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, clearColor [4]float64) (wgpuRendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}

	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		clearColor: wgpu.Color{
			R: clearColor[0], G: clearColor[1], B: clearColor[2], A: clearColor[3],
		},
		quad: bind_group_provider.NewBindGroupProvider(bind_group_provider.WithLabel("Quad")),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	capabilities := w.surface.GetCapabilities(w.adapter)
	if len(capabilities.Formats) == 0 {
		w.Release()
		return nil, errors.New("surface reports no supported formats")
	}
	w.surfaceFormat = &capabilities.Formats[0]

	return w, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		b.surfaceConfigured = false
		return nil
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		b.surfaceConfigured = false
		return errors.New("surface reports no supported formats")
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.surfaceConfigured = true
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterQuadPipeline(vertexShader, fragmentShader shader.Shader) error {
	if err := vertexShader.Validate(); err != nil {
		return err
	}
	if err := fragmentShader.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	vs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: vertexShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: vertexShader.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("vertex shader compilation failed: %w", err)
	}
	defer vs.Release()

	fs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: fragmentShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: fragmentShader.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("fragment shader compilation failed: %w", err)
	}
	defer fs.Release()

	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Quad Uniforms Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(len(common.StructToBytes(&b.uniforms))),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}
	b.quad.SetBindGroupLayout(layout)

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Quad",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Quad Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(len(common.StructToBytes(&quadVertices[0]))),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 3 * 4, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("shader program linking failed: %w", err)
	}
	b.quadPipeline = created

	return nil
}

func (b *wgpuRendererBackendImpl) InitQuad() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexData := common.SliceToBytes(quadVertices)
	indexData := common.SliceToBytes(quadIndices)

	vbuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: b.quad.Label() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(vbuf, 0, vertexData)
	b.quad.SetVertexBuffer(vbuf)

	ibuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: b.quad.Label() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(ibuf, 0, indexData)
	b.quad.SetIndexBuffer(ibuf)
	b.quad.SetIndexCount(len(quadIndices))

	b.uniforms.Modifier = 1.0
	uniformData := common.StructToBytes(&b.uniforms)
	ubuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: b.quad.Label() + " Uniform Buffer",
		Size:  uint64(len(uniformData)),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(ubuf, 0, uniformData)
	b.quad.SetBuffer(0, ubuf)

	// Without a pipeline there is no layout to bind against; the quad is skipped at draw time.
	if b.quad.BindGroupLayout() == nil {
		return nil
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  b.quad.Label() + " Bind Group",
		Layout: b.quad.BindGroupLayout(),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  ubuf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return err
	}
	b.quad.SetBindGroup(bindGroup)

	return nil
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.surfaceConfigured {
		return ErrSurfaceUnavailable
	}
	// If a previous frame's surface texture is still held, avoid acquiring another one.
	if b.frameSurface != nil {
		return ErrFrameInFlight
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: b.clearColor,
			},
		},
	})

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawQuad(modifier float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || b.quadPipeline == nil || !b.quad.Drawable() {
		return
	}

	b.uniforms.Modifier = modifier
	b.writeBuffersLocked([]bind_group_provider.BufferWrite{
		{Provider: b.quad, Binding: 0, Offset: 0, Data: common.StructToBytes(&b.uniforms)},
	})

	b.framePass.SetPipeline(b.quadPipeline)
	b.framePass.SetBindGroup(0, b.quad.BindGroup(), nil)
	b.framePass.SetVertexBuffer(0, b.quad.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(b.quad.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(b.quad.IndexCount()), 1, 0, 0, 0)
}

// writeBuffersLocked queues every write whose target buffer exists. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) writeBuffersLocked(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		if buf := w.Target(); buf != nil {
			b.queue.WriteBuffer(buf, w.Offset, w.Data)
		}
	}
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return nil
	}
	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.releaseFrameLocked()
		return err
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) InsertFence() Fence {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device == nil {
		return NewSignaledFence()
	}
	device := b.device
	b.fences.Add(1)
	return NewFence(func() {
		defer b.fences.Done()
		device.Poll(true, nil)
	})
}

func (b *wgpuRendererBackendImpl) ReleaseFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseFrameLocked()
}

// releaseFrameLocked drops every per-frame handle. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) releaseFrameLocked() {
	if b.framePass != nil {
		b.framePass.Release()
		b.framePass = nil
	}
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	drained := make(chan struct{})
	go func() {
		b.fences.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(fenceDrainTimeout):
		common.Logger().Warn("releasing device with outstanding fence polls")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameLocked()
	b.quad.Release()
	if b.quadPipeline != nil {
		b.quadPipeline.Release()
		b.quadPipeline = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
	b.surfaceConfigured = false
}
