package grid

import "io"

// Renderer draws a view-model into a container. Hosts supply their own.
type Renderer interface {
	Render(vm *ViewModel, w io.Writer) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(vm *ViewModel, w io.Writer) error

func (f RendererFunc) Render(vm *ViewModel, w io.Writer) error {
	return f(vm, w)
}

// Binding keeps a container in sync with a view-model by re-rendering on
// every change notification.
type Binding struct {
	vm          *ViewModel
	renderer    Renderer
	w           io.Writer
	unsubscribe func()
	renders     int
	err         error
}

// Bind renders vm into w once and again after every change. The initial
// render error, if any, is returned and the binding is not installed.
func Bind(vm *ViewModel, r Renderer, w io.Writer) (*Binding, error) {
	b := &Binding{vm: vm, renderer: r, w: w}
	if err := b.render(); err != nil {
		return nil, err
	}
	b.unsubscribe = vm.Subscribe(func(Change) {
		b.err = b.render()
	})
	return b, nil
}

func (b *Binding) render() error {
	b.renders++
	return b.renderer.Render(b.vm, b.w)
}

// Err is the error from the most recent re-render.
func (b *Binding) Err() error {
	return b.err
}

// Renders counts render passes, the initial one included.
func (b *Binding) Renders() int {
	return b.renders
}

// Close stops re-rendering. It is safe to call more than once.
func (b *Binding) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}
