package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainResponses(t *testing.T, respCh <-chan Response, errCh <-chan error) []Response {
	t.Helper()
	var out []Response
	for respCh != nil || errCh != nil {
		select {
		case resp, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			out = append(out, resp)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			require.NoError(t, err)
		}
	}
	return out
}

func TestMockModel_DefaultResponse(t *testing.T) {
	m := NewMockModel("test", "mock")

	respCh, errCh := m.Generate(context.Background(), Request{Input: "hello"})
	responses := drainResponses(t, respCh, errCh)

	require.Len(t, responses, 1)
	assert.Equal(t, "Mock response to: hello", responses[0].Text)
	assert.False(t, responses[0].Partial)
	assert.Equal(t, "stop", responses[0].FinishReason)
}

func TestMockModel_CannedResponse(t *testing.T) {
	m := NewMockModel("test", "mock")
	m.AddResponse("Weather in Tokyo", "WEATHER_ROUTE")

	respCh, errCh := m.Generate(context.Background(), Request{Input: "Weather in Tokyo"})
	responses := drainResponses(t, respCh, errCh)

	require.Len(t, responses, 1)
	assert.Equal(t, "WEATHER_ROUTE", responses[0].Text)
}

func TestMockModel_Streaming(t *testing.T) {
	m := NewMockModel("test", "mock")
	m.AddResponse("hi", "abc")

	respCh, errCh := m.Generate(context.Background(), Request{Input: "hi", Stream: true})
	responses := drainResponses(t, respCh, errCh)

	require.Len(t, responses, 4)

	var assembled string
	for _, r := range responses[:3] {
		assert.True(t, r.Partial)
		assembled += r.Text
	}
	assert.Equal(t, "abc", assembled)

	final := responses[3]
	assert.False(t, final.Partial)
	assert.Equal(t, "abc", final.Text)
}

func TestMockModel_Info(t *testing.T) {
	m := NewMockModel("test-model", "mock")

	info := m.Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
}
