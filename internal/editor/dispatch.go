package editor

// DefaultKeys is the key map used by Dispatch.
var DefaultKeys = DefaultKeyMap()

// Dispatch handles one key press with DefaultKeys.
func Dispatch(s State, k Key) (State, Effect) {
	return DefaultKeys.Dispatch(s, k)
}

// Dispatch folds the actions bound to k through Update. The status message
// of the previous key press is cleared first. Folding stops at the first
// action that yields an effect.
func (km KeyMap) Dispatch(s State, k Key) (State, Effect) {
	s.Message = ""
	s.MessageIsError = false
	for _, a := range km.Actions(s.Mode, k) {
		var eff Effect
		s, eff = Update(s, a)
		if eff != nil {
			return s, eff
		}
	}
	return s, nil
}
