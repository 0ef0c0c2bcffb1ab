package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// PromptsConfig holds the generator-facing prompt templates. The grounding
// prompt is a text/template body executed with a {{.Context}} field.
type PromptsConfig struct {
	GroundingPrompt string `yaml:"grounding_prompt"`
	NotFoundAnswer  string `yaml:"not_found_answer"`
}

const defaultGroundingPrompt = `You are a retrieval-augmented assistant.
Answer using ONLY the context below. If the context does not contain the
answer, say you could not find it in the indexed documents. Do not invent
facts.

Context:
{{.Context}}`

const defaultNotFoundAnswer = "I could not find anything relevant in the indexed documents."

// LoadPromptsConfig reads the prompt templates from PROMPTS_CONFIG_PATH.
// A missing file is not an error: the compiled-in defaults apply. A present
// but unparseable file is an error, so a broken deploy fails loudly.
func LoadPromptsConfig() (*PromptsConfig, error) {
	path := os.Getenv("PROMPTS_CONFIG_PATH")
	if path == "" {
		path = "configs/prompts.yaml"
	}

	cfg := &PromptsConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyPromptDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyPromptDefaults(cfg)
	return cfg, nil
}

func applyPromptDefaults(cfg *PromptsConfig) {
	if cfg.GroundingPrompt == "" {
		cfg.GroundingPrompt = defaultGroundingPrompt
	}
	if cfg.NotFoundAnswer == "" {
		cfg.NotFoundAnswer = defaultNotFoundAnswer
	}
}
