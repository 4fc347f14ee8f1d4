package interview

import (
	"context"

	"github.com/hirevox/screener/core/audio"
)

// audioInput is the input facade used to normalize capture behavior.
type audioInput struct {
	client AudioInput
}

func (a *audioInput) set(client AudioInput) {
	if a != nil {
		a.client = client
	}
}

func (a *audioInput) isConfigured() bool {
	return a != nil && a.client != nil
}

func (a *audioInput) start(ctx context.Context, onAudio func(audio []byte)) error {
	if !a.isConfigured() {
		return nil
	}

	return a.client.Stream(ctx, onAudio)
}

func (a *audioInput) EncodingInfo() audio.EncodingInfo {
	if !a.isConfigured() {
		return audio.GetDefaultEncodingInfo()
	}

	return a.client.EncodingInfo()
}

func (a *audioInput) Close() {
	if !a.isConfigured() {
		return
	}

	a.client.Close()
}
