package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// It does not run the editor; callers hand the returned *exec.Cmd to
// tea.ExecProcess so Bubble Tea releases the terminal first.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionEnd = "-->"

func instructionComment(heading string) string {
	var b strings.Builder
	b.WriteString("<!--\ntermblog: ")
	if heading = strings.TrimSpace(heading); heading != "" {
		b.WriteString(heading)
	} else {
		b.WriteString("Write below.")
	}
	b.WriteString("\n\n")
	b.WriteString("- SAVE and EXIT to submit (e.g., :wq in vi).\n")
	b.WriteString("- An empty file cancels.\n")
	b.WriteString("- For posts, a first line like \"# My title\" becomes the title.\n")
	b.WriteString(instructionEnd + "\n\n")
	return b.String()
}

// Cmd prepares an *exec.Cmd for the editor and a temp file path.
// The file holds an instruction comment naming heading, then content.
func (e *EnvEditor) Cmd(content, heading string) (*exec.Cmd, string, error) {
	editorCmd := strings.TrimSpace(os.Getenv("EDITOR"))
	if editorCmd == "" {
		editorCmd = "vi"
	}

	tmpFile, err := os.CreateTemp("", "termblog-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(instructionComment(heading) + content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	// $EDITOR may carry flags, e.g. "code --wait".
	fields := strings.Fields(editorCmd)
	args := append(fields[1:], tmpPath)
	return exec.Command(fields[0], args...), tmpPath, nil
}

// ReadContent reads the temp file, strips the instruction comment, trims
// whitespace and removes the file.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if strings.HasPrefix(strings.TrimSpace(content), "<!--") {
		if idx := strings.Index(content, instructionEnd); idx != -1 {
			content = content[idx+len(instructionEnd):]
		}
	}
	return strings.TrimSpace(content), nil
}

// SplitDraft separates a leading "# Title" line from the body of a post
// draft. Without such a line the title is empty.
func SplitDraft(draft string) (title, body string) {
	draft = strings.TrimSpace(draft)
	first, rest, _ := strings.Cut(draft, "\n")
	if t, ok := strings.CutPrefix(strings.TrimSpace(first), "# "); ok {
		return strings.TrimSpace(t), strings.TrimSpace(rest)
	}
	return "", draft
}
