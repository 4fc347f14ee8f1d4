package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"

	"github.com/hirevox/screener/core/audio"
	"github.com/hirevox/screener/core/texttospeech"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const speakURL = "https://api.deepgram.com/v1/speak"

type deepgramVoice = string

const defaultVoice deepgramVoice = "aura-helios-en"

func GetAvailableVoices() []deepgramVoice {
	return []deepgramVoice{
		"aura-asteria-en",
		"aura-luna-en",
		"aura-stella-en",
		"aura-athena-en",
		"aura-hera-en",
		"aura-orion-en",
		"aura-arcas-en",
		"aura-perseus-en",
		"aura-angus-en",
		"aura-orpheus-en",
		"aura-helios-en",
		"aura-zeus-en",
	}
}

// SynthesisClient converts text segments into raw audio through the Deepgram
// speak REST API.
type SynthesisClient struct {
	apiKey  string
	baseURL string
	options texttospeech.SynthesisOptions

	httpClient *http.Client
}

func NewSynthesisClient(opts ...texttospeech.SynthesisOption) (*SynthesisClient, error) {
	apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
	if !ok {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	client := &SynthesisClient{
		apiKey:  apiKey,
		baseURL: speakURL,
		options: texttospeech.SynthesisOptions{
			Voice:        defaultVoice,
			EncodingInfo: audio.GetDefaultEncodingInfo(),
		},
	}
	for _, opt := range opts {
		opt(&client.options)
	}

	if !slices.Contains(GetAvailableVoices(), client.options.Voice) {
		return nil, fmt.Errorf("invalid voice")
	}

	client.httpClient = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   client.options.RequestTimeout,
	}

	return client, nil
}

// Synthesize returns the audio bytes for one text segment.
func (c *SynthesisClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	requestBodyBytes, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return nil, fmt.Errorf("error marshalling JSON: %w", err)
	}

	urlValues := url.Values{}
	urlValues.Set("model", c.options.Voice)
	urlValues.Set("encoding", c.options.EncodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(c.options.EncodingInfo.SampleRate))
	urlValues.Set("container", "none")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"?"+urlValues.Encode(), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("non-OK HTTP status %s: %s", resp.Status, string(body))
	}

	audioBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	return audioBytes, nil
}
