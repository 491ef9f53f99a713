package domain_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmatch/internal/domain"
)

func TestItemRender(t *testing.T) {
	tests := []struct {
		name string
		item domain.Item
		want string
	}{
		{
			name: "plain text",
			item: domain.TextItem{Content: "What is 2+2?"},
			want: "<p>What is 2+2?</p>",
		},
		{
			name: "text with css class",
			item: domain.TextItem{Content: "Question", CSSClass: "big"},
			want: `<p class="big">Question</p>`,
		},
		{
			name: "text escapes html",
			item: domain.TextItem{Content: `<script>alert("x")</script>`},
			want: "<p>&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;</p>",
		},
		{
			name: "image with dimensions",
			item: domain.ImageItem{URL: "https://example.com/a.png", Alt: "Logo", Width: "120px"},
			want: `<img src="https://example.com/a.png" alt="Logo" width="120px" />`,
		},
		{
			name: "image minimal",
			item: domain.ImageItem{URL: "https://example.com/a.png"},
			want: `<img src="https://example.com/a.png" alt="" />`,
		},
		{
			name: "video with controls",
			item: domain.VideoItem{URL: "https://example.com/v.mp4", Controls: true},
			want: `<video controls><source src="https://example.com/v.mp4" type="video/mp4" />Your browser does not support the video tag.</video>`,
		},
		{
			name: "video with thumbnail and autoplay",
			item: domain.VideoItem{URL: "https://example.com/v.mp4", Thumbnail: "https://example.com/t.png", Controls: true, Autoplay: true},
			want: `<video poster="https://example.com/t.png" controls autoplay><source src="https://example.com/v.mp4" type="video/mp4" />Your browser does not support the video tag.</video>`,
		},
		{
			name: "audio with controls",
			item: domain.AudioItem{URL: "https://example.com/a.mp3", Controls: true},
			want: `<audio controls><source src="https://example.com/a.mp3" type="audio/mpeg" />Your browser does not support the audio tag.</audio>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.Render())
		})
	}
}

func TestMarshalUnmarshalItem(t *testing.T) {
	tests := []struct {
		name     string
		item     domain.Item
		wantType string
	}{
		{name: "text", item: domain.TextItem{Content: "hi"}, wantType: "text"},
		{name: "image", item: domain.ImageItem{URL: "u", Alt: "a"}, wantType: "image"},
		{name: "video", item: domain.VideoItem{URL: "u", Controls: true}, wantType: "video"},
		{name: "audio", item: domain.AudioItem{URL: "u", Controls: true, Autoplay: true}, wantType: "audio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := domain.MarshalItem(tt.item)
			require.NoError(t, err)

			var probe map[string]any
			require.NoError(t, json.Unmarshal(raw, &probe))
			assert.Equal(t, tt.wantType, probe["type"])

			back, err := domain.UnmarshalItem(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.item, back)
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := domain.UnmarshalItem([]byte(`{"type":"hologram"}`))
		assert.Error(t, err)
	})

	t.Run("video controls default to true", func(t *testing.T) {
		it, err := domain.UnmarshalItem([]byte(`{"type":"video","url":"u"}`))
		require.NoError(t, err)
		assert.True(t, it.(domain.VideoItem).Controls)
	})
}

func TestNewQuizTemplate(t *testing.T) {
	question := domain.TextItem{Content: "Q"}
	answers := []domain.Item{domain.TextItem{Content: "A"}, domain.TextItem{Content: "B"}}

	t.Run("valid", func(t *testing.T) {
		q, err := domain.NewQuizTemplate(question, answers, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, q.CorrectIndex)
		assert.NotNil(t, q.Metadata)
	})

	t.Run("nil question", func(t *testing.T) {
		_, err := domain.NewQuizTemplate(nil, answers, 0, nil)
		assert.Error(t, err)
	})

	t.Run("no answers", func(t *testing.T) {
		_, err := domain.NewQuizTemplate(question, nil, 0, nil)
		assert.Error(t, err)
	})

	t.Run("correct index out of range", func(t *testing.T) {
		_, err := domain.NewQuizTemplate(question, answers, 2, nil)
		assert.Error(t, err)
		_, err = domain.NewQuizTemplate(question, answers, -1, nil)
		assert.Error(t, err)
	})
}

func TestQuizTemplate_CheckAnswerAndPoints(t *testing.T) {
	q, err := domain.NewQuizTemplate(
		domain.TextItem{Content: "Q"},
		[]domain.Item{domain.TextItem{Content: "A"}, domain.TextItem{Content: "B"}},
		1,
		map[string]any{"points": float64(15)},
	)
	require.NoError(t, err)

	assert.True(t, q.CheckAnswer(1))
	assert.False(t, q.CheckAnswer(0))
	assert.Equal(t, 15, q.Points())

	q.Metadata = map[string]any{"points": 10}
	assert.Equal(t, 10, q.Points())

	q.Metadata = map[string]any{}
	assert.Equal(t, 0, q.Points())
}

func TestQuizTemplate_Render(t *testing.T) {
	q, err := domain.NewQuizTemplate(
		domain.TextItem{Content: "Pick one"},
		[]domain.Item{domain.TextItem{Content: "Right"}, domain.TextItem{Content: "Wrong"}},
		0,
		nil,
	)
	require.NoError(t, err)

	t.Run("without solution", func(t *testing.T) {
		out := q.Render(false, nil)

		assert.Contains(t, out, `<div class="quiz-container">`)
		assert.Contains(t, out, `<div class="quiz-question">`)
		assert.Contains(t, out, `<div class="quiz-answer" data-answer-index="0">`)
		assert.Contains(t, out, `<div class="quiz-answer" data-answer-index="1">`)
		assert.NotContains(t, out, "correct")
	})

	t.Run("with solution tags answers", func(t *testing.T) {
		out := q.Render(true, nil)

		assert.Contains(t, out, `<div class="quiz-answer correct" data-answer-index="0">`)
		assert.Contains(t, out, `<div class="quiz-answer incorrect" data-answer-index="1">`)
	})

	t.Run("custom css classes", func(t *testing.T) {
		out := q.Render(false, map[string]string{"container": "c", "answer": "a"})

		assert.True(t, strings.HasPrefix(out, `<div class="c">`))
		assert.Contains(t, out, `<div class="a" data-answer-index="0">`)
	})

	t.Run("metadata emitted hidden", func(t *testing.T) {
		q.Metadata = map[string]any{"points": 10}
		out := q.Render(false, nil)

		assert.Contains(t, out, `<div class="quiz-metadata" style="display:none;">`)
		assert.Contains(t, out, `<span data-points="10"></span>`)
	})
}

func TestQuizDataRoundTrip(t *testing.T) {
	q, err := domain.NewQuizTemplate(
		domain.TextItem{Content: "Q"},
		[]domain.Item{
			domain.TextItem{Content: "A"},
			domain.ImageItem{URL: "https://example.com/b.png", Alt: "B"},
		},
		1,
		map[string]any{"difficulty": "easy"},
	)
	require.NoError(t, err)

	t.Run("client payload omits solution", func(t *testing.T) {
		data, err := q.Data(false)
		require.NoError(t, err)
		assert.Nil(t, data.CorrectIndex)

		raw, err := json.Marshal(data)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "correct_index")
	})

	t.Run("full payload rebuilds the template", func(t *testing.T) {
		data, err := q.Data(true)
		require.NoError(t, err)
		require.NotNil(t, data.CorrectIndex)

		back, err := domain.QuizFromData(data)
		require.NoError(t, err)
		assert.Equal(t, q.CorrectIndex, back.CorrectIndex)
		assert.Equal(t, q.Question, back.Question)
		assert.Equal(t, q.Answers, back.Answers)
	})

	t.Run("client payload cannot rebuild", func(t *testing.T) {
		data, err := q.Data(false)
		require.NoError(t, err)

		_, err = domain.QuizFromData(data)
		assert.Error(t, err)
	})
}

func TestQuizFileRoundTrip(t *testing.T) {
	q, err := domain.NewQuizTemplate(
		domain.TextItem{Content: "Q"},
		[]domain.Item{domain.TextItem{Content: "A"}, domain.TextItem{Content: "B"}},
		0,
		map[string]any{"points": float64(10)},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "quizzes", "q1.json")
	require.NoError(t, q.SaveFile(path))

	back, err := domain.LoadQuizFile(path)
	require.NoError(t, err)

	assert.Equal(t, q.Question, back.Question)
	assert.Equal(t, q.Answers, back.Answers)
	assert.Equal(t, q.CorrectIndex, back.CorrectIndex)
}
