package compose

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/termblog/tui/common"
)

// View renders the compose form.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("New post"))
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
		if i == fieldTopics && len(m.topicHints) > 0 {
			b.WriteString(common.TimestampStyle.Render("        " + strings.Join(m.topicHints, ", ")))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.content.View())
	b.WriteString("\n\n")

	if m.notice != "" {
		style := common.SuccessStyle
		if m.isErr {
			style = common.ErrorStyle
		}
		b.WriteString(style.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(common.StatusBarStyle.Render(
		common.HelpLine(m.keys.Submit, m.keys.Cancel) +
			fmt.Sprintf(" • tab: next field • ctrl+e: $EDITOR • %d chars", len([]rune(m.content.Value()))),
	))
	return b.String()
}
