package interview

import "context"

// playbackController is the playback facade used to handle optional client
// wiring and error classification.
type playbackController struct {
	client Playback
}

func (p *playbackController) set(client Playback) {
	if p != nil {
		p.client = client
	}
}

func (p *playbackController) isConfigured() bool {
	return p != nil && p.client != nil
}

func (p *playbackController) play(ctx context.Context, pcm []byte) error {
	if !p.isConfigured() {
		return nil
	}

	if err := p.client.Play(ctx, pcm); err != nil {
		return &PlaybackError{Err: err}
	}
	return nil
}
