package vision

import (
	"image"
)

// Ambient alternates two visions: the main one handles mainAmount frames,
// then the ambient one handles a single frame, and so on.
type Ambient struct {
	main       *Vision
	ambient    *Vision
	mainAmount int

	counter int
	current *Vision
}

// NewAmbient returns a switch between main and ambient.
//
// With startAmbient false the ambient vision is current and the count of main
// frames starts full, so the first Update keeps the ambient vision. With
// startAmbient true main is current and the count starts at zero, so the
// ambient vision first runs after mainAmount+1 main frames.
func NewAmbient(main, ambient *Vision, mainAmount int, startAmbient bool) *Ambient {
	a := &Ambient{main: main, ambient: ambient, mainAmount: mainAmount}
	if startAmbient {
		a.counter = 0
		a.current = main
	} else {
		a.counter = mainAmount
		a.current = ambient
	}
	return a
}

// Current returns the vision that handles the next frame.
func (a *Ambient) Current() *Vision { return a.current }

// Main returns the main vision.
func (a *Ambient) Main() *Vision { return a.main }

// AmbientVision returns the ambient vision.
func (a *Ambient) AmbientVision() *Vision { return a.ambient }

// IsAmbient reports whether the ambient vision is current.
func (a *Ambient) IsAmbient() bool { return a.current == a.ambient }

// Update advances the switch by one frame.
func (a *Ambient) Update() {
	if a.counter < a.mainAmount {
		a.counter++
		a.current = a.main
		return
	}
	a.counter = 0
	a.current = a.ambient
}

// Process runs img through the current vision, then calls Update. The switch
// advances even when processing fails.
func (a *Ambient) Process(img image.Image) (Outcome, error) {
	isAmbient := a.IsAmbient()
	out, err := a.current.Process(img)
	a.Update()
	if err != nil {
		return Outcome{}, err
	}
	out.Ambient = isAmbient
	return out, nil
}

// Reset resets both visions. The switch position is kept.
func (a *Ambient) Reset() {
	a.main.Reset()
	a.ambient.Reset()
}

// Halt engages or releases the stopper of both visions.
func (a *Ambient) Halt(engaged bool) {
	a.main.Halt(engaged)
	a.ambient.Halt(engaged)
}

// Halted reports whether either vision is halted.
func (a *Ambient) Halted() bool { return a.main.Halted() || a.ambient.Halted() }
