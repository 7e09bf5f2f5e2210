// Package knowledge loads the named markdown documents folded into the
// agent's system prompt.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/lifeos/internal/constants"
)

// Loader reads knowledge documents from a directory. Documents are read on
// every call so edits take effect without a restart.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// SystemPrompt returns the base operating-rules prompt from SYSTEM_PROMPT.md,
// or the fallback prompt when the file is missing.
func (l *Loader) SystemPrompt() string {
	content, err := os.ReadFile(filepath.Join(l.dir, constants.SystemPromptFile))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", constants.SystemPromptFile).Msg("Failed to read system prompt")
		}
		return constants.FallbackSystemPrompt
	}
	return strings.TrimSpace(string(content))
}

// Context concatenates the named knowledge documents under per-file headers.
// Missing documents are skipped; an empty result means no documents exist.
func (l *Loader) Context() string {
	var sections []string
	for _, name := range constants.KnowledgeFiles {
		content, err := os.ReadFile(filepath.Join(l.dir, name))
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn().Err(err).Str("file", name).Msg("Failed to read knowledge file")
			}
			continue
		}
		sections = append(sections, fmt.Sprintf("--- %s ---\n%s\n", name, string(content)))
	}

	if len(sections) == 0 {
		return ""
	}
	return "\n\n" + strings.Join(sections, "\n")
}
