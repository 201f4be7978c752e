package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	ConversationTypeDefault = "default"
	ConversationTypeCBT     = "CBT"
	ConversationTypeMBT     = "MBT"

	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// IsConversationType reports whether t is one of the supported personas.
func IsConversationType(t string) bool {
	switch t {
	case ConversationTypeDefault, ConversationTypeCBT, ConversationTypeMBT:
		return true
	}
	return false
}
