// Package gpu mirrors particle attributes into WebGPU vertex buffers.
package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/gekkofx"
)

// Device is a surfaceless adapter/device pair, enough for buffer uploads.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
}

func NewHeadlessDevice() (*Device, error) {
	instance := wgpu.CreateInstance(nil)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "gekkofx particles",
	})
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	return &Device{
		instance: instance,
		adapter:  adapter,
		Device:   device,
		Queue:    device.GetQueue(),
	}, nil
}

func (d *Device) Release() {
	d.Queue.Release()
	d.Device.Release()
	d.adapter.Release()
	d.instance.Release()
}

type attributeBuffer struct {
	buffer  *wgpu.Buffer
	size    uint64
	version uint64
}

func (a *attributeBuffer) release() {
	if a.buffer != nil {
		a.buffer.Release()
		a.buffer = nil
		a.size = 0
	}
}

type geometryBuffers struct {
	position attributeBuffer
	color    attributeBuffer
}

// Uploader keeps one vertex buffer per attribute per geometry. A buffer is
// recreated when the attribute changes size and rewritten in place
// otherwise.
type Uploader struct {
	device     *wgpu.Device
	queue      *wgpu.Queue
	geometries map[gekkofx.AssetId]*geometryBuffers

	BytesWritten uint64
}

func NewUploader(d *Device) *Uploader {
	return &Uploader{
		device:     d.Device,
		queue:      d.Queue,
		geometries: make(map[gekkofx.AssetId]*geometryBuffers),
	}
}

func (u *Uploader) UploadPoints(p *gekkofx.Points) error {
	g := p.Geometry
	if g == nil || g.Disposed() {
		return nil
	}
	bufs, ok := u.geometries[g.ID]
	if !ok {
		bufs = &geometryBuffers{}
		u.geometries[g.ID] = bufs
	}
	if err := u.sync(&bufs.position, g.Position, string(g.ID)+"/position"); err != nil {
		return err
	}
	return u.sync(&bufs.color, g.Color, string(g.ID)+"/color")
}

func (u *Uploader) sync(dst *attributeBuffer, attr *gekkofx.BufferAttribute, label string) error {
	if !attr.NeedsUpdate && dst.buffer != nil {
		return nil
	}
	data := float32Bytes(attr.Data)
	if len(data) == 0 {
		attr.NeedsUpdate = false
		return nil
	}
	size := uint64(len(data))

	if dst.buffer == nil || dst.size != size {
		dst.release()
		buffer, err := u.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    label,
			Contents: data,
			Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create %s: %w", label, err)
		}
		dst.buffer = buffer
		dst.size = size
	} else if err := u.queue.WriteBuffer(dst.buffer, 0, data); err != nil {
		return fmt.Errorf("write %s: %w", label, err)
	}

	u.BytesWritten += size
	dst.version = attr.Version
	attr.NeedsUpdate = false
	return nil
}

func (u *Uploader) ReleaseGeometry(id gekkofx.AssetId) {
	bufs, ok := u.geometries[id]
	if !ok {
		return
	}
	bufs.position.release()
	bufs.color.release()
	delete(u.geometries, id)
}

// Buffers returns the vertex buffers bound to a geometry.
func (u *Uploader) Buffers(id gekkofx.AssetId) (position, color *wgpu.Buffer, ok bool) {
	bufs, ok := u.geometries[id]
	if !ok {
		return nil, nil, false
	}
	return bufs.position.buffer, bufs.color.buffer, true
}

func (u *Uploader) Release() {
	for id := range u.geometries {
		u.ReleaseGeometry(id)
	}
}

// float32Bytes reinterprets the attribute data without copying.
func float32Bytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), len(data)*4)
}
