package speechtotext

import "github.com/hirevox/screener/core/audio"

// Event is a single transcription update from the live stream.
//
// IsFinal marks a finalized transcript segment. SpeechFinal additionally
// marks a detected endpoint: the speaker paused long enough for the
// utterance to be considered complete.
type Event struct {
	Transcript  string
	IsFinal     bool
	SpeechFinal bool
}

// Config mirrors the live-transcription options recognized by the stream.
type Config struct {
	Model    string
	Language string

	SmartFormat    bool
	InterimResults bool
	UtteranceEndMs int
	EndpointingMs  int
}

func DefaultConfig() Config {
	return Config{
		Model:          "nova-2",
		Language:       "en-US",
		SmartFormat:    true,
		InterimResults: true,
		UtteranceEndMs: 1000,
		EndpointingMs:  500,
	}
}

type TranscriptionOptions struct {
	EventCallback         func(event Event)
	SpeechStartedCallback func()

	Config       Config
	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

func WithEventCallback(callback func(event Event)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EventCallback = callback
	}
}

func WithSpeechStartedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechStartedCallback = callback
	}
}

func WithConfig(config Config) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.Config = config
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
