package entity

// Gesture: клавиша, к которой привязана команда оболочки.
type Gesture string

const (
	GestureInspect         Gesture = "i"
	GestureInspectAdvanced Gesture = "a"
	GesturePassThrough     Gesture = "p"
	GestureQuit            Gesture = "q"
)

func (g Gesture) String() string {
	return string(g)
}
