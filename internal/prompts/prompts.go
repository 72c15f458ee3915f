package prompts

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Set holds the system prompt templates for every LLM-backed feature.
// Loaded once at startup so a malformed template fails fast.
type Set struct {
	ChatSystem         string `yaml:"chat_system"`
	QuizSystem         string `yaml:"quiz_system"`
	LearningPathSystem string `yaml:"learning_path_system"`
	StudySessionSystem string `yaml:"study_session_system"`
	ResearchSystem     string `yaml:"research_system"`
	VideoScriptSystem  string `yaml:"video_script_system"`
}

func Load() (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(promptsYAML, &s); err != nil {
		return nil, fmt.Errorf("parse prompts.yaml: %w", err)
	}
	if s.ChatSystem == "" || s.QuizSystem == "" || s.LearningPathSystem == "" ||
		s.StudySessionSystem == "" || s.ResearchSystem == "" || s.VideoScriptSystem == "" {
		return nil, fmt.Errorf("prompts.yaml is missing one or more templates")
	}
	return &s, nil
}
