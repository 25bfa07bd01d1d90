package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/core/domain"
)

func TestNew_Defaults(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	assert.Equal(t, DefaultChunkSize, s.ChunkSize())
	assert.Equal(t, DefaultOverlap, s.Overlap())
}

func TestNew_InvalidChunkSize(t *testing.T) {
	_, err := New(WithChunkSize(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = New(WithChunkSize(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNew_OverlapNotSmallerThanChunkSize(t *testing.T) {
	_, err := New(WithChunkSize(100), WithOverlap(100))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = New(WithChunkSize(100), WithOverlap(150))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNew_NegativeOverlap(t *testing.T) {
	_, err := New(WithChunkSize(100), WithOverlap(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestSplit_Empty(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	assert.Nil(t, s.Split(""))
}

func TestSplit_ShortText_SingleSpan(t *testing.T) {
	s, err := New(WithChunkSize(100), WithOverlap(10))
	require.NoError(t, err)

	spans := s.Split("hello world")
	require.Len(t, spans, 1)
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, 11, spans[0].End)
	assert.Equal(t, "hello world", spans[0].Content)
}

func TestSplit_SnapsToSentenceBoundary(t *testing.T) {
	s, err := New(WithChunkSize(4), WithOverlap(1))
	require.NoError(t, err)

	spans := s.Split("A. B. C. D.")
	require.NotEmpty(t, spans)
	for _, span := range spans {
		assert.NotEmpty(t, span.Content)
		assert.True(t, strings.HasSuffix(span.Content, "."),
			"span %q should end at a sentence boundary", span.Content)
	}
}

func TestSplit_SnapsToNewline(t *testing.T) {
	s, err := New(WithChunkSize(10), WithOverlap(2))
	require.NoError(t, err)

	text := "first line here\nsecond line here\nthird"
	spans := s.Split(text)
	require.NotEmpty(t, spans)

	// Interior span ends must sit just past a terminator or at text end.
	for _, span := range spans {
		if span.End == len(text) {
			continue
		}
		boundary := text[span.End-1]
		naive := span.Start + 10
		if span.End > naive {
			assert.True(t, boundary == '.' || boundary == '\n',
				"snapped end %d should follow a terminator", span.End)
		}
	}
}

func TestSplit_KeepsNaiveEndWithoutTerminator(t *testing.T) {
	s, err := New(WithChunkSize(5), WithOverlap(1))
	require.NoError(t, err)

	// No terminators anywhere, so every window keeps its naive end.
	spans := s.Split("abcdefghij")
	require.Len(t, spans, 3)
	assert.Equal(t, "abcde", spans[0].Content)
	assert.Equal(t, "efghi", spans[1].Content)
	assert.Equal(t, "ij", spans[2].Content)
}

func TestSplit_ConsecutiveSpansOverlap(t *testing.T) {
	s, err := New(WithChunkSize(50), WithOverlap(10))
	require.NoError(t, err)

	text := strings.Repeat("lorem ipsum dolor sit amet ", 20)
	spans := s.Split(text)
	require.Greater(t, len(spans), 1)

	for i := 1; i < len(spans); i++ {
		assert.Equal(t, spans[i-1].End-10, spans[i].Start,
			"span %d should start overlap characters before the previous end", i)
	}
}

func TestSplit_ReconstructsOriginalText(t *testing.T) {
	overlap := 7
	s, err := New(WithChunkSize(40), WithOverlap(overlap))
	require.NoError(t, err)

	text := "The quick brown fox jumps over the lazy dog. " +
		"Pack my box with five dozen liquor jugs. " +
		"How vexingly quick daft zebras jump! " +
		"Sphinx of black quartz, judge my vow."
	spans := s.Split(text)
	require.NotEmpty(t, spans)

	var b strings.Builder
	b.WriteString(text[spans[0].Start:spans[0].End])
	for i := 1; i < len(spans); i++ {
		b.WriteString(text[spans[i].Start+overlap : spans[i].End])
	}
	assert.Equal(t, text, b.String())
}

func TestSplit_OffsetsNonDecreasing(t *testing.T) {
	s, err := New(WithChunkSize(30), WithOverlap(5))
	require.NoError(t, err)

	text := strings.Repeat("some sentence here. ", 30)
	spans := s.Split(text)
	require.NotEmpty(t, spans)

	for i := 1; i < len(spans); i++ {
		assert.GreaterOrEqual(t, spans[i].Start, spans[i-1].Start)
		assert.GreaterOrEqual(t, spans[i].End, spans[i-1].End)
	}
	assert.Equal(t, len(text), spans[len(spans)-1].End)
}

func TestSplit_DiscardsWhitespaceOnlySpans(t *testing.T) {
	s, err := New(WithChunkSize(4), WithOverlap(1))
	require.NoError(t, err)

	spans := s.Split("ab      ")
	require.Len(t, spans, 1)
	assert.Equal(t, "ab", spans[0].Content)
}
