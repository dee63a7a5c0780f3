package core

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// maxTicksPerFrame bounds catch-up updates after a stall.
const maxTicksPerFrame = 10

// Run creates the window and renderer, then drives app until the window
// closes. The window is destroyed on every return path.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Shutdown()

	eng := newEngine(win, rend, cfg)
	win.SetEventCallback(func(ev Event) { eng.dispatch(app, ev) })

	app.OnStart(eng)
	eng.loop(app, newFixedClock(UpdateRate, maxTicksPerFrame), time.Now)
	app.OnShutdown(eng)

	log.Println("Engine exit")
	return nil
}

func newEngine(win Window, rend Renderer, cfg Config) *Engine {
	rend.Resize(win.FramebufferSize())
	return &Engine{Window: win, Renderer: rend, Input: NewInput(), Config: cfg, start: time.Now()}
}

// dispatch feeds ev to the input state and the app, then applies the
// engine's own handling.
func (e *Engine) dispatch(app App, ev Event) {
	e.Input.Handle(ev)
	app.OnEvent(e, ev)

	switch ev.(type) {
	case EventResize:
		// Minimized windows report zero; keep the last real size.
		if fw, fh := e.Window.FramebufferSize(); fw > 0 && fh > 0 {
			e.Renderer.Resize(fw, fh)
		}
	case EventCloseRequested:
		e.Window.RequestClose()
	}
}

// loop runs frames until the window wants to close: poll, fixed updates,
// clear, render, present.
func (e *Engine) loop(app App, clk *fixedClock, now func() time.Time) {
	bg := e.Config.ClearColor
	prev := now()
	for !e.Window.ShouldClose() {
		t := now()
		elapsed := t.Sub(prev)
		prev = t

		e.Window.PollEvents()

		ticks, alpha := clk.advance(elapsed)
		for i := 0; i < ticks; i++ {
			app.OnUpdate(e, clk.dt())
		}

		e.Renderer.Clear(bg[0], bg[1], bg[2], bg[3])
		app.OnRender(e, alpha)
		e.Window.SwapBuffers()
	}
}
