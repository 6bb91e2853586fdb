package pathview

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"
)

// FrameInterval is the time between two animation frames.
var FrameInterval = 16 * time.Millisecond

// MouseAction is what the mouse logically did, derived from the raw button
// state of consecutive mouse reports.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	// MouseLeftClick follows a MouseLeftUp at the cell of the matching press.
	MouseLeftClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

var wheelActions = []struct {
	button tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
	{tcell.WheelLeft, MouseScrollLeft},
	{tcell.WheelRight, MouseScrollRight},
}

// mouseState is what the application remembers between two mouse reports.
type mouseState struct {
	// holder receives every action until a handler returns nil.
	holder       Primitive
	x, y         int
	downX, downY int
	buttons      tcell.ButtonMask
}

// Application owns the screen and runs the event loop for a root primitive.
//
// The following shows a primitive p until a handler returns QuitCommand:
//
//	if err := pathview.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
//
// Primitives with running animations register through AnimateCommand and
// are then called once per FrameInterval until they report they are done.
type Application struct {
	mu sync.RWMutex

	screen      tcell.Screen
	root, focus Primitive
	// fullRedraw clears the screen before the next draw.
	fullRedraw bool

	// updates carries functions queued by other goroutines.
	updates chan func()

	mouse mouseState

	animators map[Animator]struct{}
	ticker    *time.Ticker
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{updates: make(chan func(), 100)}
}

// Run opens the terminal and handles events until QuitCommand or Stop. It
// returns the error that ended the loop, if any.
func (a *Application) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	a.mu.Lock()
	a.screen = screen
	a.fullRedraw = true
	a.mu.Unlock()

	// A panic leaves the terminal unusable unless the screen is finalized.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()
	events := screen.EventQ()
	for {
		select {
		case now := <-a.frames():
			if a.animate(now) {
				a.draw()
			}
		case update := <-a.updates:
			update()
		case event := <-events:
			if event == nil {
				return nil
			}
			if err, ok := event.(*tcell.EventError); ok {
				a.Stop()
				return err
			}
			if a.handle(event) {
				a.draw()
			}
		}
	}
}

// handle dispatches a terminal event and reports whether a redraw is due.
func (a *Application) handle(event tcell.Event) bool {
	switch event := event.(type) {
	case *tcell.EventKey:
		root := a.getRoot()
		if root == nil || !root.HasFocus() {
			return false
		}
		return a.executeCommand(root.InputHandler(event))
	case *tcell.EventMouse:
		return a.handleMouse(event)
	case *tcell.EventResize:
		a.mu.Lock()
		a.fullRedraw = true
		a.mu.Unlock()
		return true
	}
	return false
}

// handleMouse compares the button state with the previous report to find
// presses and releases, then sends each resulting action in turn.
func (a *Application) handleMouse(event *tcell.EventMouse) bool {
	m := &a.mouse
	x, y := event.Position()
	buttons := event.Buttons()
	changed := buttons ^ m.buttons
	m.buttons = buttons

	var actions []MouseAction
	if x != m.x || y != m.y {
		m.x, m.y = x, y
		actions = append(actions, MouseMove)
	}
	if changed&tcell.ButtonPrimary != 0 {
		if buttons&tcell.ButtonPrimary != 0 {
			m.downX, m.downY = x, y
			actions = append(actions, MouseLeftDown)
		} else {
			actions = append(actions, MouseLeftUp)
			if x == m.downX && y == m.downY {
				actions = append(actions, MouseLeftClick)
			}
		}
	}
	for _, w := range wheelActions {
		if buttons&w.button != 0 {
			actions = append(actions, w.action)
		}
	}

	redraw := false
	for _, action := range actions {
		if a.sendMouse(action, event) {
			redraw = true
		}
	}
	return redraw
}

// sendMouse passes action to the holder of the mouse, or to the root when
// nobody holds it. The primitive the handler returns holds the mouse next.
func (a *Application) sendMouse(action MouseAction, event *tcell.EventMouse) bool {
	target := a.mouse.holder
	if target == nil {
		target = a.getRoot()
	}
	if target == nil {
		return false
	}
	holder, cmd := target.MouseHandler(action, event)
	// A holder that lets go by returning nil keeps its gesture; one that is
	// replaced by another primitive loses it.
	if holder != nil && holder != a.mouse.holder {
		a.releaseMouse()
	}
	a.mouse.holder = holder
	return a.executeCommand(cmd)
}

// releaseMouse takes the mouse away from its holder.
func (a *Application) releaseMouse() {
	if u, ok := a.mouse.holder.(MouseUngrabber); ok {
		u.MouseUngrab()
	}
	a.mouse.holder = nil
}

// Stop finalizes the screen and stops all animations, causing Run to return.
func (a *Application) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopFrames()
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
}

func (a *Application) draw() {
	a.mu.Lock()
	screen, root, full := a.screen, a.root, a.fullRedraw
	a.fullRedraw = false
	a.mu.Unlock()
	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	// tcell only sends the cells that changed since the last Show, so the
	// screen is cleared only when its contents are unknown.
	if full {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()
}

// SetRoot replaces the root primitive and gives it the focus. A gesture in
// progress on the previous root is cancelled.
func (a *Application) SetRoot(root Primitive) *Application {
	a.mu.Lock()
	a.root = root
	a.fullRedraw = true
	a.mu.Unlock()

	if a.mouse.holder != nil {
		a.releaseMouse()
	}
	a.SetFocus(root)
	return a
}

func (a *Application) getRoot() Primitive {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.root
}

// SetFocus blurs the focused primitive and focuses p, which may pass the
// focus on through its delegate.
func (a *Application) SetFocus(p Primitive) *Application {
	a.mu.Lock()
	previous := a.focus
	a.focus = p
	a.mu.Unlock()

	if previous != nil {
		previous.Blur()
	}
	if p != nil {
		p.Focus(func(p Primitive) { a.SetFocus(p) })
	}
	return a
}

// GetFocus returns the focused primitive, or nil.
func (a *Application) GetFocus() Primitive {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.focus
}

// QueueUpdate runs f on the event loop and returns once it did. Primitives
// must only be touched from the loop, so other goroutines go through here.
// It must not be called from the loop itself.
func (a *Application) QueueUpdate(f func()) *Application {
	done := make(chan struct{})
	a.updates <- func() {
		defer close(done)
		f()
	}
	<-done
	return a
}

// QueueUpdateDraw works like QueueUpdate and redraws after f.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	return a.QueueUpdate(func() {
		f()
		a.draw()
	})
}

// executeCommand carries out cmd and reports whether it calls for a redraw.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case BatchCommand:
		redraw := false
		for _, item := range c {
			if a.executeCommand(item) {
				redraw = true
			}
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
	case SetFocusCommand:
		if c.Target == nil || c.Target == a.GetFocus() {
			return false
		}
		a.SetFocus(c.Target)
		return true
	case SetTitleCommand:
		a.mu.RLock()
		screen := a.screen
		a.mu.RUnlock()
		if screen != nil {
			screen.SetTitle(string(c))
		}
	case AnimateCommand:
		if c.Target == nil {
			return false
		}
		a.startFrames(c.Target)
		// The first frame only anchors the animation clock.
		c.Target.Animate(time.Now())
		return true
	}
	return false
}

func (a *Application) startFrames(target Animator) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.animators == nil {
		a.animators = make(map[Animator]struct{})
	}
	a.animators[target] = struct{}{}
	if a.ticker == nil {
		a.ticker = time.NewTicker(FrameInterval)
	}
}

// stopFrames must be called with a.mu held.
func (a *Application) stopFrames() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
	clear(a.animators)
}

// frames returns the channel delivering animation frames, or nil while
// nothing is animating.
func (a *Application) frames() <-chan time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.ticker == nil {
		return nil
	}
	return a.ticker.C
}

// animate advances every registered animator to now and reports whether
// anything was animated. Animators that are done are dropped, and the ticker
// stops with the last of them.
func (a *Application) animate(now time.Time) bool {
	a.mu.Lock()
	animators := make([]Animator, 0, len(a.animators))
	for animator := range a.animators {
		animators = append(animators, animator)
	}
	a.mu.Unlock()

	var done []Animator
	for _, animator := range animators {
		if !animator.Animate(now) {
			done = append(done, animator)
		}
	}

	a.mu.Lock()
	for _, animator := range done {
		delete(a.animators, animator)
	}
	if len(a.animators) == 0 {
		a.stopFrames()
	}
	a.mu.Unlock()
	return len(animators) > 0
}
