package communicationService

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"GestureTalk/internal/api/communication"
	"GestureTalk/pkg/gesture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlaybackSession(t *testing.T, svc *communicationService) string {
	t.Helper()

	created, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	return created.Session.ID
}

func swipe(dx, dy float64) communication.GestureRequest {
	return communication.GestureRequest{StartX: 100, StartY: 100, EndX: 100 + dx, EndY: 100 + dy}
}

func TestResolveGesturePlaysPhrase(t *testing.T) {
	svc := newTestService(t, testServiceOptions{catalog: catalogPhrases(12)})
	id := newPlaybackSession(t, svc)
	ctx := context.Background()

	resp, err := svc.ResolveGesture(ctx, id, swipe(120, 0))
	require.NoError(t, err)

	assert.Equal(t, gesture.DirectionRight, resp.Direction)
	require.NotNil(t, resp.Phrase)
	assert.Equal(t, "c4", resp.Phrase.ID)
	assert.Equal(t, "Thank you", resp.Phrase.Message)
	assert.True(t, resp.Played)
	assert.True(t, resp.Haptic)

	state, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Thank you", state.Session.Playback.FeedbackText)
	assert.True(t, state.Session.Playback.IsPlaying)
	assert.Equal(t, gesture.DirectionRight, state.Session.Playback.ActiveDirection)
}

func TestResolveGestureSubThreshold(t *testing.T) {
	svc := newTestService(t, testServiceOptions{catalog: catalogPhrases(12)})
	id := newPlaybackSession(t, svc)

	resp, err := svc.ResolveGesture(context.Background(), id, swipe(30, 10))
	require.NoError(t, err)

	assert.Equal(t, gesture.DirectionNone, resp.Direction)
	assert.Nil(t, resp.Phrase)
	assert.False(t, resp.Played)
	assert.False(t, resp.Haptic)
}

func TestResolveGestureNoPhraseForDirection(t *testing.T) {
	// 5 phrases: the second page holds only one phrase, direction up.
	svc := newTestService(t, testServiceOptions{catalog: catalogPhrases(5)})
	id := newPlaybackSession(t, svc)
	ctx := context.Background()

	_, err := svc.NextPage(ctx, id)
	require.NoError(t, err)

	resp, err := svc.ResolveGesture(ctx, id, swipe(0, 120))
	require.NoError(t, err)

	assert.Equal(t, gesture.DirectionDown, resp.Direction)
	assert.Nil(t, resp.Phrase)
	assert.False(t, resp.Played)
	assert.True(t, resp.Haptic)
}

func TestFeedbackAutoClears(t *testing.T) {
	svc := newTestService(t, testServiceOptions{catalog: catalogPhrases(12)})
	id := newPlaybackSession(t, svc)
	ctx := context.Background()

	_, err := svc.ResolveGesture(ctx, id, swipe(0, -120))
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	state, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, state.Session.Playback.FeedbackText)
	assert.False(t, state.Session.Playback.IsPlaying)
}

func TestNewPlaybackSupersedesOld(t *testing.T) {
	svc := newTestService(t, testServiceOptions{catalog: catalogPhrases(12)})
	id := newPlaybackSession(t, svc)
	ctx := context.Background()

	_, err := svc.ResolveGesture(ctx, id, swipe(0, -120))
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = svc.ResolveGesture(ctx, id, swipe(0, 120))
	require.NoError(t, err)

	// Past the first phrase's clear deadline: its timer must not wipe the
	// second phrase's feedback.
	time.Sleep(20 * time.Millisecond)

	state, err := svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "I am thirsty", state.Session.Playback.FeedbackText)
	assert.True(t, state.Session.Playback.IsPlaying)
}

func TestResolveGestureLocalAudio(t *testing.T) {
	audioDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(audioDir, "c4.mp3"), []byte("mp3-bytes"), 0o644))

	svc := newTestService(t, testServiceOptions{catalog: catalogPhrases(12), audioDir: audioDir})
	id := newPlaybackSession(t, svc)

	resp, err := svc.ResolveGesture(context.Background(), id, swipe(120, 0))
	require.NoError(t, err)

	assert.True(t, resp.Played)
	assert.Equal(t, "/api/v1/communication/audio/c4", resp.AudioURL)
}

func TestResolveGestureSynthesizesGeneratedAudio(t *testing.T) {
	tts := &fakeTTS{data: []byte("synth")}
	s3 := &fakeS3{}
	svc := newTestService(t, testServiceOptions{catalog: catalogPhrases(12), tts: tts, s3: s3})
	ctx := context.Background()
	id := newPlaybackSession(t, svc)

	_, err := svc.ToggleMode(ctx, id)
	require.NoError(t, err)
	_, err = svc.RequestSuggestions(ctx, id, "a good day")
	require.NoError(t, err)

	resp, err := svc.ResolveGesture(ctx, id, swipe(0, -120))
	require.NoError(t, err)

	require.NotNil(t, resp.Phrase)
	assert.Equal(t, "ai-1", resp.Phrase.ID)
	assert.NotEmpty(t, resp.AudioURL)

	// The clip was persisted and is now served from cache.
	assert.Equal(t, []byte("synth"), s3.object("ai-1"))

	data, err := svc.ServeAudioFile(ctx, "ai-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("synth"), data)
}

func TestServeAudioFile(t *testing.T) {
	audioDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(audioDir, "c1.mp3"), []byte("clip"), 0o644))

	svc := newTestService(t, testServiceOptions{catalog: catalogPhrases(12), audioDir: audioDir})
	ctx := context.Background()

	data, err := svc.ServeAudioFile(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []byte("clip"), data)

	_, err = svc.ServeAudioFile(ctx, "nope")
	assert.ErrorIs(t, err, communication.ErrAudioNotFound)

	// Path escapes are rejected outright.
	for _, id := range []string{"", "../c1", "a/b", `a\b`} {
		_, err = svc.ServeAudioFile(ctx, id)
		assert.ErrorIs(t, err, communication.ErrAudioNotFound, "id %q", id)
	}
}
