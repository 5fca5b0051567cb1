package stt

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDeepgram(t *testing.T, handler http.HandlerFunc) *Deepgram {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewDeepgram(DeepgramConfig{
		APIKey:   "dg-key",
		Endpoint: server.URL,
		Timeout:  5 * time.Second,
	}, discardLogger())
}

const listenBody = `{
	"results": {
		"channels": [{
			"alternatives": [{"transcript": "I felt so happy today after the walk."}]
		}]
	}
}`

func TestDeepgramTranscribe(t *testing.T) {
	var gotReq *http.Request
	var gotAudio []byte

	d := newTestDeepgram(t, func(w http.ResponseWriter, req *http.Request) {
		gotReq = req
		gotAudio, _ = io.ReadAll(req.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, listenBody)
	})

	audio := []byte("RIFF....fake wav bytes")
	res := d.Transcribe(context.Background(), audio, "audio/wav")

	if res.Degraded {
		t.Fatalf("unexpected degradation: %q", res.Reason)
	}
	if res.Text != "I felt so happy today after the walk." {
		t.Errorf("text = %q", res.Text)
	}

	if gotReq.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", gotReq.Method)
	}
	if got := gotReq.Header.Get("Authorization"); got != "Token dg-key" {
		t.Errorf("authorization = %q", got)
	}
	if got := gotReq.Header.Get("Content-Type"); got != "audio/wav" {
		t.Errorf("content-type = %q", got)
	}
	q := gotReq.URL.Query()
	if q.Get("model") != DefaultModel {
		t.Errorf("model = %q, want %q", q.Get("model"), DefaultModel)
	}
	if q.Get("smart_format") != "true" {
		t.Errorf("smart_format = %q, want true", q.Get("smart_format"))
	}
	if q.Get("language") != "en" {
		t.Errorf("language = %q, want en", q.Get("language"))
	}
	if string(gotAudio) != string(audio) {
		t.Error("audio bytes were not forwarded unchanged")
	}
}

func TestDeepgramServerError(t *testing.T) {
	d := newTestDeepgram(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	res := d.Transcribe(context.Background(), []byte("audio"), "audio/wav")

	if !res.Degraded {
		t.Fatal("expected degraded result")
	}
	if res.Reason != ReasonRequestFailed {
		t.Errorf("reason = %q, want %q", res.Reason, ReasonRequestFailed)
	}
	if res.Text != "" {
		t.Errorf("text = %q, want empty", res.Text)
	}
}

func TestDeepgramMalformedResponse(t *testing.T) {
	d := newTestDeepgram(t, func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, "not json")
	})

	res := d.Transcribe(context.Background(), []byte("audio"), "audio/wav")

	if !res.Degraded || res.Reason != ReasonRequestFailed {
		t.Errorf("got %+v, want request_failed degradation", res)
	}
}

func TestDeepgramNoSpeech(t *testing.T) {
	d := newTestDeepgram(t, func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, `{"results":{"channels":[{"alternatives":[{"transcript":""}]}]}}`)
	})

	res := d.Transcribe(context.Background(), []byte("audio"), "audio/wav")

	if !res.Degraded {
		t.Fatal("expected degraded result")
	}
	if res.Reason != ReasonNoSpeech {
		t.Errorf("reason = %q, want %q", res.Reason, ReasonNoSpeech)
	}
}

func TestDeepgramDefaultsMimeType(t *testing.T) {
	var gotContentType string
	d := newTestDeepgram(t, func(w http.ResponseWriter, req *http.Request) {
		gotContentType = req.Header.Get("Content-Type")
		io.WriteString(w, listenBody)
	})

	d.Transcribe(context.Background(), []byte("audio"), "")

	if gotContentType != "audio/wav" {
		t.Errorf("content-type = %q, want audio/wav", gotContentType)
	}
}

func TestDisabledTranscriber(t *testing.T) {
	res := Disabled{}.Transcribe(context.Background(), []byte("audio"), "audio/wav")

	if !res.Degraded {
		t.Fatal("expected degraded result")
	}
	if res.Reason != ReasonNoCredential {
		t.Errorf("reason = %q, want %q", res.Reason, ReasonNoCredential)
	}
	if res.Text != "" {
		t.Errorf("text = %q, want empty", res.Text)
	}
}
