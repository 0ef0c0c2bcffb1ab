// Package assembler turns ranked hits into the bounded grounding context
// handed to the generator.
package assembler

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

// blockSeparator joins context blocks. Fixed so logged contexts diff cleanly.
const blockSeparator = "\n\n---\n\n"

// Assembler formats retrieval output and builds the generator message list.
type Assembler struct {
	groundingTmpl  *template.Template
	notFoundAnswer string
}

func New(groundingPrompt string, notFoundAnswer string) (*Assembler, error) {
	tmpl, err := template.New("grounding").Parse(groundingPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse grounding prompt template: %w", err)
	}

	return &Assembler{
		groundingTmpl:  tmpl,
		notFoundAnswer: notFoundAnswer,
	}, nil
}

// Context is the assembled grounding block. Empty reports the no-context
// sentinel state: callers must skip generation and answer with NotFoundAnswer
// instead of letting the generator hallucinate.
type Context struct {
	Text    string
	Sources []string
	Empty   bool
}

// Assemble drops hits with empty text and formats the survivors as
// provenance-tagged blocks in the store's relevance order.
func (a *Assembler) Assemble(hits []models.SearchHit) Context {
	blocks := make([]string, 0, len(hits))
	sources := make([]string, 0, len(hits))

	for _, hit := range hits {
		text := strings.TrimSpace(hit.Text)
		if text == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("[doc_id=%s chunk_id=%s]\n%s", hit.DocID, hit.ChunkID, text))
		sources = append(sources, fmt.Sprintf("%s::%s", hit.DocID, hit.ChunkID))
	}

	if len(blocks) == 0 {
		return Context{Empty: true}
	}

	return Context{
		Text:    strings.Join(blocks, blockSeparator),
		Sources: sources,
	}
}

// NotFoundAnswer is the fixed answer for the no-context state.
func (a *Assembler) NotFoundAnswer() string {
	return a.notFoundAnswer
}

// BuildMessages prepends the grounding system instruction to the caller's
// conversation. System, user and assistant turns pass through verbatim; any
// other role is dropped.
func (a *Assembler) BuildMessages(assembled Context, conversation []models.ChatMessage) ([]models.ChatMessage, error) {
	var buf bytes.Buffer
	err := a.groundingTmpl.Execute(&buf, struct{ Context string }{Context: assembled.Text})
	if err != nil {
		return nil, fmt.Errorf("grounding template execution failed: %w", err)
	}

	messages := make([]models.ChatMessage, 0, len(conversation)+1)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: buf.String()})

	for _, m := range conversation {
		switch m.Role {
		case models.RoleSystem, models.RoleUser, models.RoleAssistant:
			messages = append(messages, m)
		}
	}

	return messages, nil
}

// AppendSources attaches the provenance list to a generated answer so a
// human can check where it came from.
func AppendSources(content string, sources []string) string {
	if len(sources) == 0 {
		return content
	}
	return content + "\n\nSources:\n- " + strings.Join(sources, "\n- ")
}
