package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"
	"github.com/hirevox/screener/core/audio"
)

// Client is a duplex PortAudio stream usable as both the microphone source
// and the playback sink. Capture and playback share one stream, so both run
// at the default sample rate.
type Client struct {
	bufferSize int
	stream     *portaudio.Stream

	in  []int16
	out []int16
}

func NewClient(bufferSize int) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	in := make([]int16, bufferSize)
	out := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 1, audio.DefaultSampleRate, bufferSize, in, out)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}

	return &Client{
		bufferSize: bufferSize,
		stream:     stream,
		in:         in,
		out:        out,
	}, nil
}

func (c *Client) Stream(ctx context.Context, onAudio func(audio []byte)) error {
	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start portaudio stream: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := c.stream.Read(); err != nil {
					log.Printf("Failed to read from portaudio stream: %v", err)
					continue
				}

				audioBuffer := bytes.Buffer{}
				_ = binary.Write(&audioBuffer, binary.LittleEndian, c.in)
				onAudio(audioBuffer.Bytes())
			}
		}
	}()

	return nil
}

// Play writes pcm to the output stream buffer by buffer. Writes are
// synchronous, so Play returns roughly when the device finishes rendering.
func (c *Client) Play(ctx context.Context, pcm []byte) error {
	chunkSize := c.bufferSize * 2

	for start := 0; start < len(pcm); start += chunkSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := min(start+chunkSize, len(pcm))
		chunk := pcm[start:end]
		if len(chunk) < chunkSize {
			padded := make([]byte, chunkSize)
			copy(padded, chunk)
			chunk = padded
		}

		if err := binary.Read(bytes.NewBuffer(chunk), binary.LittleEndian, c.out); err != nil {
			return fmt.Errorf("failed to frame audio for playback: %w", err)
		}
		if err := c.stream.Write(); err != nil {
			return fmt.Errorf("failed to write to portaudio stream: %w", err)
		}
	}

	return nil
}

func (c *Client) Close() {
	_ = c.stream.Close()
	_ = portaudio.Terminate()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{
		SampleRate: audio.DefaultSampleRate,
		Format:     audio.EncodingLinear16,
	}
}

// PlaybackEncodingInfo matches the capture side since the duplex stream runs
// at a single rate.
func (c *Client) PlaybackEncodingInfo() audio.EncodingInfo {
	return c.EncodingInfo()
}
