package briefing

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/goleak"

	"newsbrief/internal/model"
	"newsbrief/pkg/llm"
	"newsbrief/pkg/media"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeNews struct {
	articles []model.Article
	err      error
	gotTopic string
	gotLimit int
}

func (f *fakeNews) Fetch(ctx context.Context, topic string, limit int) ([]model.Article, error) {
	f.gotTopic = topic
	f.gotLimit = limit
	return f.articles, f.err
}

func (f *fakeNews) Name() string {
	return "fake"
}

// firstWords summarizes by keeping the leading words of the input.
type firstWords struct {
	n      int
	failOn string
	inputs []string
}

func (f *firstWords) Summarize(ctx context.Context, text string) (string, error) {
	f.inputs = append(f.inputs, text)
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return "", errors.New("input exceeds model context")
	}
	words := strings.Fields(text)
	if len(words) > f.n {
		words = words[:f.n]
	}
	return strings.Join(words, " "), nil
}

func (f *firstWords) Name() string {
	return "first-words"
}

type fakeImages struct {
	prompts []string
	err     error
}

func (f *fakeImages) Generate(ctx context.Context, prompt string) ([]byte, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	var buf bytes.Buffer
	png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2)))
	return buf.Bytes(), nil
}

func (f *fakeImages) Name() string {
	return "fake-images"
}

type fakeSpeech struct{}

func (fakeSpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return []byte("RIFF" + text), nil
}

func (fakeSpeech) Name() string {
	return "fake-speech"
}

func newTestService(t *testing.T, n *fakeNews, s llm.Summarizer, img *fakeImages) *Service {
	t.Helper()
	t.Chdir(t.TempDir())
	return NewService(n, s, img, nil, media.NewStore("static/images", "static/audio"), Options{
		DefaultTopic: "technology",
		ArticleCount: 2,
	})
}

func TestBuildSingleArticle(t *testing.T) {
	long := "Long article text " + strings.Repeat("about a new model ", 40)
	n := &fakeNews{articles: []model.Article{{Title: "AI breakthrough", Content: long}}}
	svc := newTestService(t, n, llm.Bounded(&firstWords{n: 200}, llm.Bounds{MinTokens: 30, MaxTokens: 80}), &fakeImages{})

	items, err := svc.Build(context.Background(), "technology")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(items))
	assert.Equal(t, "AI breakthrough", items[0].Title)
	assert.Equal(t, "static/images/technology_0.png", items[0].ImagePath)
	assert.Equal(t, true, len(items[0].Summary) < len(long))
	assert.Equal(t, true, len(strings.Fields(items[0].Summary)) <= 80)
	assert.Equal(t, "", items[0].AudioPath)

	_, err = os.Stat(items[0].ImagePath)
	assert.Equal(t, nil, err)
}

func TestBuildEmpty(t *testing.T) {
	n := &fakeNews{articles: []model.Article{}}
	img := &fakeImages{}
	svc := newTestService(t, n, &firstWords{n: 10}, img)

	items, err := svc.Build(context.Background(), "nosuchtopic123")

	assert.Equal(t, nil, err)
	assert.NotEqual(t, nil, items)
	assert.Equal(t, 0, len(items))
	assert.Equal(t, 0, len(img.prompts))
}

func TestBuildKeepsFetchOrder(t *testing.T) {
	n := &fakeNews{articles: []model.Article{
		{Title: "First", Content: "first body"},
		{Title: "Second", Description: "second description"},
	}}
	s := &firstWords{n: 10}
	img := &fakeImages{}
	svc := newTestService(t, n, s, img)

	items, err := svc.Build(context.Background(), "science")

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(items))
	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "Second", items[1].Title)
	assert.Equal(t, "static/images/science_0.png", items[0].ImagePath)
	assert.Equal(t, "static/images/science_1.png", items[1].ImagePath)
	assert.Equal(t, []string{"first body", "second description"}, s.inputs)
	assert.Equal(t, []string{"First", "Second"}, img.prompts)
	for _, item := range items {
		assert.NotEqual(t, "", item.Summary)
	}
}

func TestBuildDefaultTopic(t *testing.T) {
	n := &fakeNews{}
	svc := newTestService(t, n, &firstWords{n: 10}, &fakeImages{})

	_, err := svc.Build(context.Background(), "  ")

	assert.Equal(t, nil, err)
	assert.Equal(t, "technology", n.gotTopic)
	assert.Equal(t, 2, n.gotLimit)
}

func TestBuildFetchError(t *testing.T) {
	n := &fakeNews{err: errors.New("connection refused")}
	svc := newTestService(t, n, &firstWords{n: 10}, &fakeImages{})

	items, err := svc.Build(context.Background(), "technology")

	var stepErr *StepError
	assert.Equal(t, true, errors.As(err, &stepErr))
	assert.Equal(t, StepFetch, stepErr.Step)
	assert.Equal(t, -1, stepErr.Index)
	assert.Equal(t, 0, len(items))
}

func TestBuildAbortsOnSummaryFailure(t *testing.T) {
	n := &fakeNews{articles: []model.Article{
		{Title: "Fine", Content: "short body"},
		{Title: "Huge", Content: "enormous body"},
	}}
	img := &fakeImages{}
	svc := newTestService(t, n, &firstWords{n: 10, failOn: "enormous"}, img)

	items, err := svc.Build(context.Background(), "technology")

	var stepErr *StepError
	assert.Equal(t, true, errors.As(err, &stepErr))
	assert.Equal(t, StepSummarize, stepErr.Step)
	assert.Equal(t, 1, stepErr.Index)
	assert.Equal(t, 0, len(items))
	assert.Equal(t, []string{"Fine"}, img.prompts)
}

func TestBuildAbortsOnImageFailure(t *testing.T) {
	boom := errors.New("diffusion model unavailable")
	n := &fakeNews{articles: []model.Article{{Title: "AI breakthrough", Content: "body"}}}
	svc := newTestService(t, n, &firstWords{n: 10}, &fakeImages{err: boom})

	items, err := svc.Build(context.Background(), "technology")

	var stepErr *StepError
	assert.Equal(t, true, errors.As(err, &stepErr))
	assert.Equal(t, StepImage, stepErr.Step)
	assert.Equal(t, 0, stepErr.Index)
	assert.Equal(t, true, errors.Is(err, boom))
	assert.Equal(t, 0, len(items))
}

func TestBuildWithSpeech(t *testing.T) {
	t.Chdir(t.TempDir())
	n := &fakeNews{articles: []model.Article{{Title: "AI breakthrough", Content: "body text"}}}
	svc := NewService(n, &firstWords{n: 10}, &fakeImages{}, fakeSpeech{}, media.NewStore("static/images", "static/audio"), Options{
		DefaultTopic: "technology",
		ArticleCount: 2,
	})

	items, err := svc.Build(context.Background(), "technology")

	assert.Equal(t, nil, err)
	assert.Equal(t, "static/audio/technology_0.wav", items[0].AudioPath)

	audio, err := os.ReadFile(items[0].AudioPath)
	assert.Equal(t, nil, err)
	assert.Equal(t, "RIFFbody text", string(audio))
}

func TestStepErrorMessage(t *testing.T) {
	err := &StepError{Step: StepImage, Index: 1, Err: errors.New("boom")}
	assert.Equal(t, "briefing image (article 1): boom", err.Error())

	err = &StepError{Step: StepFetch, Index: -1, Err: errors.New("boom")}
	assert.Equal(t, "briefing fetch: boom", err.Error())
}
