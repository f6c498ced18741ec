package keyboard

// EffectKind enumerates what the engine asks its consumer to do after
// processing one input event.
type EffectKind uint8

const (
	// EffectNone means the event changed engine state only.
	EffectNone EffectKind = iota
	// EffectAppend commits Text to the output.
	EffectAppend
	// EffectDeleteBack deletes one unit from the end of the output.
	EffectDeleteBack
	// EffectClear discards the whole output.
	EffectClear
)

// Effect is the engine's committed-text instruction for one event.
type Effect struct {
	Kind EffectKind
	Text string
}

func appendEffect(text string) Effect {
	return Effect{Kind: EffectAppend, Text: text}
}
