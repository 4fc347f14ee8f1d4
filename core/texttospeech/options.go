package texttospeech

import (
	"time"

	"github.com/hirevox/screener/core/audio"
)

type SynthesisOptions struct {
	Voice        string
	EncodingInfo audio.EncodingInfo

	// RequestTimeout bounds a single synthesis request. Zero means no
	// timeout.
	RequestTimeout time.Duration
}

type SynthesisOption func(*SynthesisOptions)

func WithVoice(voice string) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.Voice = voice
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.EncodingInfo = encodingInfo
	}
}

func WithRequestTimeout(timeout time.Duration) SynthesisOption {
	return func(o *SynthesisOptions) {
		o.RequestTimeout = timeout
	}
}
