// Package gemini implements table narration with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/pressdoc"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = `당신은 HTML 테이블 데이터를 서술형 리스트 타입으로 변환하는 전문가입니다.
데이터 값과 컬럼명을 조합하여 서술형 문장의 JSON 문자열 배열로 변환해주세요.
병합된 테이블 데이터가 감지되는 경우 동일한 데이터로 처리해주세요.

응답 예시:
["데이터1", "데이터2"]`

// Ensure TableNarrator implements pressdoc.TableNarrator at compile time.
var _ pressdoc.TableNarrator = (*TableNarrator)(nil)

// TableNarrator implements pressdoc.TableNarrator using Google Gemini.
type TableNarrator struct {
	client *genai.Client
	model  string
}

// NewTableNarrator creates a new TableNarrator. An empty model selects
// DefaultModel.
func NewTableNarrator(client *genai.Client, model string) *TableNarrator {
	if model == "" {
		model = DefaultModel
	}
	return &TableNarrator{client: client, model: model}
}

// Narrate turns a table into descriptive sentences. A table without data
// yields no sentences and makes no request.
func (n *TableNarrator) Narrate(ctx context.Context, table pressdoc.ParsedTable) ([]string, error) {
	data := table.Flatten()
	if len(data) == 0 {
		return []string{}, nil
	}

	prompt, err := BuildPrompt(data)
	if err != nil {
		return nil, err
	}

	result, err := n.client.Models.GenerateContent(ctx, n.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, pressdoc.Errorf(pressdoc.EINTERNAL, "gemini returned nil result")
	}

	return ParseSentences(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for narration requests.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildPrompt renders the table rows, header first, as a JSON array.
func BuildPrompt(data [][]string) (string, error) {
	rows, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return "테이블 데이터:\n" + string(rows), nil
}

// ParseSentences reads the model response as a JSON string array. Responses
// that are not a JSON array fall back to their non-empty lines with list
// markers removed.
func ParseSentences(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var sentences []string
	if err := json.Unmarshal([]byte(text), &sentences); err == nil {
		return nonEmpty(sentences)
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• ")
		line = strings.Trim(line, `",`)
		if line == "[" || line == "]" {
			continue
		}
		lines = append(lines, line)
	}
	return nonEmpty(lines)
}

func nonEmpty(ss []string) []string {
	out := []string{}
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
