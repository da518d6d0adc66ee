// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-robot/internal/keywords"
	"github.com/pdiddy/content-robot/pkg/types"
)

// recordingExtractor returns the words of each sentence and records call order
// and the maximum number of overlapping calls.
type recordingExtractor struct {
	mu       sync.Mutex
	calls    []string
	inFlight int32
	maxSeen  int32
	failOn   string
	delay    time.Duration
}

func (r *recordingExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	n := atomic.AddInt32(&r.inFlight, 1)
	defer atomic.AddInt32(&r.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&r.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&r.maxSeen, seen, n) {
			break
		}
	}

	r.mu.Lock()
	r.calls = append(r.calls, text)
	r.mu.Unlock()

	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if text == r.failOn {
		return nil, errors.New("extractor unavailable")
	}
	return strings.Fields(strings.TrimSuffix(text, ".")), nil
}

func sentences(texts ...string) []types.Sentence {
	out := make([]types.Sentence, 0, len(texts))
	for _, t := range texts {
		out = append(out, types.NewSentence(t))
	}
	return out
}

func TestEnrich_Sequential(t *testing.T) {
	ex := &recordingExtractor{delay: time.Millisecond}
	in := sentences("Rome is old.", "It was powerful.", "Caesar ruled.")
	var progress bytes.Buffer

	out, err := Enrich(context.Background(), in, ex, Options{Progress: &progress})
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"Rome", "is", "old"}, out[0].Keywords)
	assert.Equal(t, []string{"It", "was", "powerful"}, out[1].Keywords)
	assert.Equal(t, []string{"Caesar", "ruled"}, out[2].Keywords)

	assert.Equal(t, []string{"Rome is old.", "It was powerful.", "Caesar ruled."}, ex.calls)
	assert.Equal(t, int32(1), ex.maxSeen)
	assert.Contains(t, progress.String(), "enriched 3/3")

	// Input untouched.
	assert.Empty(t, in[0].Keywords)
}

func TestEnrich_NilKeywordsBecomeEmpty(t *testing.T) {
	ex := keywords.ExtractorFunc(func(context.Context, string) ([]string, error) { return nil, nil })

	out, err := Enrich(context.Background(), sentences("A.", "B."), ex, Options{})
	require.NoError(t, err)
	for _, s := range out {
		assert.NotNil(t, s.Keywords)
		assert.Empty(t, s.Keywords)
	}
}

func TestEnrich_PreservesDuplicatesAndOrder(t *testing.T) {
	ex := keywords.ExtractorFunc(func(context.Context, string) ([]string, error) {
		return []string{"b", "a", "b"}, nil
	})

	out, err := Enrich(context.Background(), sentences("x."), ex, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "b"}, out[0].Keywords)
}

func TestEnrich_FailureAbortsRemaining(t *testing.T) {
	ex := &recordingExtractor{failOn: "Two."}

	out, err := Enrich(context.Background(), sentences("One.", "Two.", "Three."), ex, Options{})
	require.Error(t, err)
	assert.Nil(t, out)

	var enrichErr *Error
	require.ErrorAs(t, err, &enrichErr)
	assert.Equal(t, 1, enrichErr.Index)
	assert.Equal(t, "Two.", enrichErr.Text)
	assert.Equal(t, []string{"One.", "Two."}, ex.calls)
}

func TestEnrich_Empty(t *testing.T) {
	ex := &recordingExtractor{}
	out, err := Enrich(context.Background(), nil, ex, Options{})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, ex.calls)
}

func TestEnrich_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := &recordingExtractor{}
	_, err := Enrich(ctx, sentences("One."), ex, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ex.calls)
}

func TestEnrich_Concurrent(t *testing.T) {
	ex := &recordingExtractor{delay: 20 * time.Millisecond}
	in := sentences("A one.", "B two.", "C three.", "D four.")

	out, err := Enrich(context.Background(), in, ex, Options{Mode: types.EnrichConcurrent, Workers: 2})
	require.NoError(t, err)

	require.Len(t, out, 4)
	for i, s := range out {
		assert.Equal(t, in[i].Text, s.Text)
		assert.Equal(t, strings.Fields(strings.TrimSuffix(in[i].Text, ".")), s.Keywords)
	}
	assert.LessOrEqual(t, ex.maxSeen, int32(2))
}

func TestEnrich_ConcurrentFailure(t *testing.T) {
	ex := &recordingExtractor{failOn: "B two."}

	out, err := Enrich(context.Background(), sentences("A one.", "B two.", "C three."), ex, Options{Mode: types.EnrichConcurrent})
	assert.Nil(t, out)

	var enrichErr *Error
	require.ErrorAs(t, err, &enrichErr)
	assert.Equal(t, 1, enrichErr.Index)
}

func TestEnrich_UnknownMode(t *testing.T) {
	_, err := Enrich(context.Background(), sentences("A."), &recordingExtractor{}, Options{Mode: "batch"})
	assert.Error(t, err)
}
