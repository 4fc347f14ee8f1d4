package interview

import (
	"context"

	"github.com/hirevox/screener/core/audio"
	"github.com/hirevox/screener/core/llms"
	"github.com/hirevox/screener/core/speechtotext"
)

type OrchestratorOption func(*Orchestrator)

type SpeechToText interface {
	Transcribe(ctx context.Context, opts ...speechtotext.TranscriptionOption) error
	SendAudio(audio []byte) error
}

func WithSpeechToTextClient(client SpeechToText) OrchestratorOption {
	return func(o *Orchestrator) {
		o.speechToText.set(client)
	}
}

type ResponseGenerator interface {
	Generate(ctx context.Context, history []llms.Message, askedQuestions []string) (string, error)
}

func WithResponseGenerator(client ResponseGenerator) OrchestratorOption {
	return func(o *Orchestrator) {
		o.generator.set(client)
	}
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

func WithSpeechSynthesizer(client SpeechSynthesizer) OrchestratorOption {
	return func(o *Orchestrator) {
		o.synthesizer.set(client)
	}
}

type Playback interface {
	Play(ctx context.Context, pcm []byte) error
}

func WithPlayback(client Playback) OrchestratorOption {
	return func(o *Orchestrator) {
		o.playback.set(client)
	}
}

type AudioInput interface {
	Stream(ctx context.Context, onAudio func(audio []byte)) error
	EncodingInfo() audio.EncodingInfo
	Close()
}

func WithAudioInput(client AudioInput) OrchestratorOption {
	return func(o *Orchestrator) {
		o.audioInput.set(client)
	}
}

func WithTranscriptionConfig(config speechtotext.Config) OrchestratorOption {
	return func(o *Orchestrator) {
		o.sttConfig = config
	}
}

type OrchestrateOptions struct {
	onInterimTranscription func(transcript string)
	onUtterance            func(utterance string)
	onReply                func(reply string)
	onTurnError            func(err error)
	onSpeakingStateChanged func(isSpeaking bool)
}

type OrchestrateOption func(*OrchestrateOptions)

// WithInterimTranscriptionCallback registers a callback for interim
// transcriptions. Interim results are observability only, they never reach
// conversation memory.
func WithInterimTranscriptionCallback(callback func(transcript string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onInterimTranscription = callback
	}
}

// WithUtteranceCallback registers a callback for finalized utterances, after
// endpoint detection and fragment concatenation.
func WithUtteranceCallback(callback func(utterance string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onUtterance = callback
	}
}

func WithReplyCallback(callback func(reply string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onReply = callback
	}
}

// WithTurnErrorCallback registers a callback for errors that ended a single
// turn. The session keeps listening after such errors.
func WithTurnErrorCallback(callback func(err error)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onTurnError = callback
	}
}

// WithSpeakingStateChangedCallback registers a callback for mute-window
// transitions around the orchestrator's own speech.
func WithSpeakingStateChangedCallback(callback func(isSpeaking bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onSpeakingStateChanged = callback
	}
}
