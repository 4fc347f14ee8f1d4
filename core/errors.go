package interview

// ConnectionError means the live transcription stream could not be
// established. It is fatal to the whole session.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "failed to establish transcription stream: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// GenerationError means the language-model call failed. It ends the current
// turn only; the session keeps listening.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "failed to generate response: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

// SynthesisError means a speech-synthesis call failed. It ends the current
// turn only.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return "failed to synthesize speech: " + e.Err.Error()
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// PlaybackError means playing synthesized audio failed. It ends the current
// turn only.
type PlaybackError struct {
	Err error
}

func (e *PlaybackError) Error() string {
	return "failed to play synthesized speech: " + e.Err.Error()
}

func (e *PlaybackError) Unwrap() error { return e.Err }
