package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lowpoly/internal/control"
)

// keyActions maps unshifted keys to controller actions.
var keyActions = map[sdl.Keycode]control.Action{
	sdl.K_EQUALS:       control.ActionMorePoints,
	sdl.K_KP_PLUS:      control.ActionMorePoints,
	sdl.K_MINUS:        control.ActionFewerPoints,
	sdl.K_KP_MINUS:     control.ActionFewerPoints,
	sdl.K_RIGHTBRACKET: control.ActionFaster,
	sdl.K_LEFTBRACKET:  control.ActionSlower,
	sdl.K_PERIOD:       control.ActionAnimationFaster,
	sdl.K_COMMA:        control.ActionAnimationSlower,
	sdl.K_h:            control.ActionToggleHoles,
	sdl.K_r:            control.ActionRegenerate,
	sdl.K_SPACE:        control.ActionPause,
	sdl.K_p:            control.ActionTogglePoints,
	sdl.K_l:            control.ActionToggleLines,
	sdl.K_f:            control.ActionToggleFill,
	sdl.K_v:            control.ActionMoreVariation,
	sdl.K_c:            control.ActionHueUp,
	sdl.K_s:            control.ActionSaturationUp,
	sdl.K_b:            control.ActionBrightnessUp,
	sdl.K_g:            control.ActionBackgroundLighter,
	sdl.K_o:            control.ActionLargerPoints,
	sdl.K_w:            control.ActionWiderLines,
}

// shiftActions overrides keyActions while shift is held.
var shiftActions = map[sdl.Keycode]control.Action{
	sdl.K_v: control.ActionLessVariation,
	sdl.K_c: control.ActionHueDown,
	sdl.K_s: control.ActionSaturationDown,
	sdl.K_b: control.ActionBrightnessDown,
	sdl.K_g: control.ActionBackgroundDarker,
	sdl.K_o: control.ActionSmallerPoints,
	sdl.K_w: control.ActionThinnerLines,
}

// keyAction returns the action bound to a key press. Held keys only repeat
// the stepping actions; toggles fire once per press.
func keyAction(key sdl.Keycode, shift, repeat bool) control.Action {
	a, ok := shiftActions[key]
	if !shift || !ok {
		a = keyActions[key]
	}
	if repeat && !repeatable(a) {
		return control.ActionNone
	}
	return a
}

func repeatable(a control.Action) bool {
	switch a {
	case control.ActionMorePoints, control.ActionFewerPoints,
		control.ActionFaster, control.ActionSlower,
		control.ActionAnimationFaster, control.ActionAnimationSlower,
		control.ActionMoreVariation, control.ActionLessVariation,
		control.ActionHueUp, control.ActionHueDown,
		control.ActionSaturationUp, control.ActionSaturationDown,
		control.ActionBrightnessUp, control.ActionBrightnessDown,
		control.ActionBackgroundLighter, control.ActionBackgroundDarker,
		control.ActionLargerPoints, control.ActionSmallerPoints,
		control.ActionWiderLines, control.ActionThinnerLines:
		return true
	}
	return false
}

func isQuitKey(key sdl.Keycode) bool {
	return key == sdl.K_ESCAPE || key == sdl.K_q
}
