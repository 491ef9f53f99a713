package domain

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
)

// Item is a renderable piece of quiz content. The set of kinds is closed:
// text, image, video and audio. New kinds require extending MarshalItem and
// UnmarshalItem, which switch exhaustively over the variants.
type Item interface {
	// Render produces an HTML fragment with all user content escaped.
	Render() string

	sealedItem()
}

type TextItem struct {
	Content  string `json:"content"`
	CSSClass string `json:"css_class,omitempty"`
}

type ImageItem struct {
	URL      string `json:"url"`
	Alt      string `json:"alt,omitempty"`
	CSSClass string `json:"css_class,omitempty"`
	Width    string `json:"width,omitempty"`
	Height   string `json:"height,omitempty"`
}

type VideoItem struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	CSSClass  string `json:"css_class,omitempty"`
	Autoplay  bool   `json:"autoplay"`
	Controls  bool   `json:"controls"`
}

type AudioItem struct {
	URL      string `json:"url"`
	CSSClass string `json:"css_class,omitempty"`
	Autoplay bool   `json:"autoplay"`
	Controls bool   `json:"controls"`
}

func (TextItem) sealedItem()  {}
func (ImageItem) sealedItem() {}
func (VideoItem) sealedItem() {}
func (AudioItem) sealedItem() {}

func (t TextItem) Render() string {
	var classAttr string
	if t.CSSClass != "" {
		classAttr = fmt.Sprintf(" class=%q", html.EscapeString(t.CSSClass))
	}
	return fmt.Sprintf("<p%s>%s</p>", classAttr, html.EscapeString(t.Content))
}

func (i ImageItem) Render() string {
	attrs := make([]string, 0, 3)
	if i.CSSClass != "" {
		attrs = append(attrs, fmt.Sprintf("class=%q", html.EscapeString(i.CSSClass)))
	}
	if i.Width != "" {
		attrs = append(attrs, fmt.Sprintf("width=%q", html.EscapeString(i.Width)))
	}
	if i.Height != "" {
		attrs = append(attrs, fmt.Sprintf("height=%q", html.EscapeString(i.Height)))
	}
	attrsStr := ""
	if len(attrs) > 0 {
		attrsStr = " " + strings.Join(attrs, " ")
	}
	return fmt.Sprintf("<img src=%q alt=%q%s />",
		html.EscapeString(i.URL), html.EscapeString(i.Alt), attrsStr)
}

func (v VideoItem) Render() string {
	attrs := make([]string, 0, 4)
	if v.CSSClass != "" {
		attrs = append(attrs, fmt.Sprintf("class=%q", html.EscapeString(v.CSSClass)))
	}
	if v.Thumbnail != "" {
		attrs = append(attrs, fmt.Sprintf("poster=%q", html.EscapeString(v.Thumbnail)))
	}
	if v.Controls {
		attrs = append(attrs, "controls")
	}
	if v.Autoplay {
		attrs = append(attrs, "autoplay")
	}
	attrsStr := ""
	if len(attrs) > 0 {
		attrsStr = " " + strings.Join(attrs, " ")
	}
	return fmt.Sprintf(`<video%s><source src=%q type="video/mp4" />Your browser does not support the video tag.</video>`,
		attrsStr, html.EscapeString(v.URL))
}

func (a AudioItem) Render() string {
	attrs := make([]string, 0, 3)
	if a.CSSClass != "" {
		attrs = append(attrs, fmt.Sprintf("class=%q", html.EscapeString(a.CSSClass)))
	}
	if a.Controls {
		attrs = append(attrs, "controls")
	}
	if a.Autoplay {
		attrs = append(attrs, "autoplay")
	}
	attrsStr := ""
	if len(attrs) > 0 {
		attrsStr = " " + strings.Join(attrs, " ")
	}
	return fmt.Sprintf(`<audio%s><source src=%q type="audio/mpeg" />Your browser does not support the audio tag.</audio>`,
		attrsStr, html.EscapeString(a.URL))
}

// MarshalItem serializes an item together with its "type" discriminator.
func MarshalItem(it Item) (json.RawMessage, error) {
	switch v := it.(type) {
	case TextItem:
		return json.Marshal(struct {
			Type string `json:"type"`
			TextItem
		}{"text", v})
	case ImageItem:
		return json.Marshal(struct {
			Type string `json:"type"`
			ImageItem
		}{"image", v})
	case VideoItem:
		return json.Marshal(struct {
			Type string `json:"type"`
			VideoItem
		}{"video", v})
	case AudioItem:
		return json.Marshal(struct {
			Type string `json:"type"`
			AudioItem
		}{"audio", v})
	default:
		return nil, fmt.Errorf("unknown item type %T", it)
	}
}

// UnmarshalItem decodes an item from its tagged JSON form.
func UnmarshalItem(data []byte) (Item, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}

	switch probe.Type {
	case "text":
		var it TextItem
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, err
		}
		return it, nil
	case "image":
		var it ImageItem
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, err
		}
		return it, nil
	case "video":
		it := VideoItem{Controls: true}
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, err
		}
		return it, nil
	case "audio":
		it := AudioItem{Controls: true}
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, err
		}
		return it, nil
	default:
		return nil, fmt.Errorf("unknown item type: %q", probe.Type)
	}
}

// QuizTemplate composes a question and its answers from items. CorrectIndex
// is zero-based into Answers. Metadata carries points, time limits and the
// like; it is passed through untyped.
type QuizTemplate struct {
	Question     Item
	Answers      []Item
	CorrectIndex int
	Metadata     map[string]any
}

// QuizData is the wire and storage form of a quiz. CorrectIndex is omitted
// when the quiz is sent to clients so the solution never leaks.
type QuizData struct {
	QuizID       string            `json:"quiz_id,omitempty"`
	Question     json.RawMessage   `json:"question"`
	Answers      []json.RawMessage `json:"answers"`
	CorrectIndex *int              `json:"correct_index,omitempty"`
	Metadata     map[string]any    `json:"metadata"`
}

func NewQuizTemplate(question Item, answers []Item, correctIndex int, metadata map[string]any) (*QuizTemplate, error) {
	if question == nil {
		return nil, fmt.Errorf("quiz must have a question")
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("quiz must have at least one answer")
	}
	if correctIndex < 0 || correctIndex >= len(answers) {
		return nil, fmt.Errorf("correct_index %d out of range for %d answers", correctIndex, len(answers))
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &QuizTemplate{
		Question:     question,
		Answers:      answers,
		CorrectIndex: correctIndex,
		Metadata:     metadata,
	}, nil
}

// CheckAnswer reports whether the zero-based answer index is the solution.
func (q *QuizTemplate) CheckAnswer(answer int) bool {
	return answer == q.CorrectIndex
}

// Points returns the point value from metadata, or zero when absent. JSON
// numbers decode as float64, so both forms are accepted.
func (q *QuizTemplate) Points() int {
	switch v := q.Metadata["points"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Render produces the full quiz as an HTML fragment. When includeSolution is
// set, answers are tagged with correct/incorrect classes. cssClasses may
// override the container/question/answers/answer class names.
func (q *QuizTemplate) Render(includeSolution bool, cssClasses map[string]string) string {
	class := func(key, fallback string) string {
		if v, ok := cssClasses[key]; ok {
			return v
		}
		return fallback
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<div class=%q>\n", html.EscapeString(class("container", "quiz-container")))

	fmt.Fprintf(&b, "<div class=%q>\n", html.EscapeString(class("question", "quiz-question")))
	b.WriteString(q.Question.Render())
	b.WriteString("\n</div>\n")

	fmt.Fprintf(&b, "<div class=%q>\n", html.EscapeString(class("answers", "quiz-answers")))
	answerClass := class("answer", "quiz-answer")
	for idx, answer := range q.Answers {
		cls := answerClass
		if includeSolution {
			if idx == q.CorrectIndex {
				cls += " correct"
			} else {
				cls += " incorrect"
			}
		}
		fmt.Fprintf(&b, "<div class=%q data-answer-index=\"%d\">\n", html.EscapeString(cls), idx)
		b.WriteString(answer.Render())
		b.WriteString("\n</div>\n")
	}
	b.WriteString("</div>\n")

	if len(q.Metadata) > 0 {
		b.WriteString(`<div class="quiz-metadata" style="display:none;">` + "\n")
		for key, value := range q.Metadata {
			fmt.Fprintf(&b, "<span data-%s=%q></span>\n",
				html.EscapeString(key), html.EscapeString(fmt.Sprint(value)))
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</div>")
	return b.String()
}

// Data converts the quiz to its wire form.
func (q *QuizTemplate) Data(includeSolution bool) (QuizData, error) {
	question, err := MarshalItem(q.Question)
	if err != nil {
		return QuizData{}, err
	}

	answers := make([]json.RawMessage, 0, len(q.Answers))
	for _, a := range q.Answers {
		raw, err := MarshalItem(a)
		if err != nil {
			return QuizData{}, err
		}
		answers = append(answers, raw)
	}

	d := QuizData{
		Question: question,
		Answers:  answers,
		Metadata: q.Metadata,
	}
	if includeSolution {
		idx := q.CorrectIndex
		d.CorrectIndex = &idx
	}
	return d, nil
}

// QuizFromData rebuilds a quiz from its wire form. The solution must be
// present; client-safe payloads cannot be turned back into templates.
func QuizFromData(d QuizData) (*QuizTemplate, error) {
	if d.CorrectIndex == nil {
		return nil, fmt.Errorf("correct_index is required")
	}

	question, err := UnmarshalItem(d.Question)
	if err != nil {
		return nil, fmt.Errorf("question: %w", err)
	}

	answers := make([]Item, 0, len(d.Answers))
	for i, raw := range d.Answers {
		item, err := UnmarshalItem(raw)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i, err)
		}
		answers = append(answers, item)
	}

	return NewQuizTemplate(question, answers, *d.CorrectIndex, d.Metadata)
}

// SaveFile writes the quiz (solution included) as indented JSON, creating
// parent directories as needed.
func (q *QuizTemplate) SaveFile(path string) error {
	d, err := q.Data(true)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create quiz directory: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// LoadQuizFile reads a quiz previously written by SaveFile.
func LoadQuizFile(path string) (*QuizTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var d QuizData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode quiz file %s: %w", path, err)
	}

	return QuizFromData(d)
}
