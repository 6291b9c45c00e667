package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"dongne/internal/ui/input/types"
)

type ChatMode struct {
	TextInputMode
}

func NewChatMode(ti *textinput.Model) *ChatMode {
	return &ChatMode{
		TextInputMode: NewTextInputMode(types.ModeChat, "chat", "> ", ti),
	}
}
