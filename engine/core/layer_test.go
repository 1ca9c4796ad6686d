package core

import (
	"slices"
	"testing"
)

type traceLayer struct {
	name    string
	log     *[]string
	consume bool
}

func (l *traceLayer) OnAttach(e *Engine)                { *l.log = append(*l.log, "attach "+l.name) }
func (l *traceLayer) OnDetach(e *Engine)                { *l.log = append(*l.log, "detach "+l.name) }
func (l *traceLayer) OnUpdate(e *Engine, dt float64)    { *l.log = append(*l.log, "update "+l.name) }
func (l *traceLayer) OnRender(e *Engine, alpha float64) { *l.log = append(*l.log, "render "+l.name) }
func (l *traceLayer) OnEvent(e *Engine, ev Event) bool {
	*l.log = append(*l.log, "event "+l.name)
	return l.consume
}

func TestLayerAppOrder(t *testing.T) {
	var log []string
	app := &LayerApp{}
	app.Layers.Push(&traceLayer{name: "world", log: &log})
	app.Layers.Push(&traceLayer{name: "overlay", log: &log, consume: true})

	app.OnStart(nil)
	app.OnUpdate(nil, 1.0/60)
	app.OnRender(nil, 0)
	app.OnEvent(nil, EventResize{W: 1, H: 1})
	app.OnShutdown(nil)

	want := []string{
		"attach world", "attach overlay",
		"update world", "update overlay",
		"render world", "render overlay",
		"event overlay", // consumed, world never sees it
		"detach overlay", "detach world",
	}
	if !slices.Equal(log, want) {
		t.Fatalf("got  %v\nwant %v", log, want)
	}
	if app.Layers.Len() != 0 {
		t.Fatalf("layers left after shutdown: %d", app.Layers.Len())
	}
}

func TestInputWasPressedIsEdgeTriggered(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyF, Down: true})
	in.Handle(EventKey{Key: KeyF, Down: true}) // key repeat
	if !in.WasPressed(KeyF) {
		t.Fatal("first press not reported")
	}
	if in.WasPressed(KeyF) {
		t.Fatal("press reported twice")
	}
	if !in.IsKeyDown(KeyF) {
		t.Fatal("key should still be down")
	}
	in.Handle(EventKey{Key: KeyF, Down: false})
	in.Handle(EventKey{Key: KeyF, Down: true})
	if !in.WasPressed(KeyF) {
		t.Fatal("second press not reported")
	}
}
