package llm

import "fmt"

// NoGroundingReply is returned without calling the backend when no context is
// available. Callers must not confuse this answer with a generation failure.
const NoGroundingReply = "I don't have any documents loaded yet. Please upload some documents so I can help you with questions grounded in their content."

// systemPrompt renders the grounding instructions around the retrieved
// context. The policy is permissive: the model answers conversationally from
// the supplied material instead of refusing anything outside it.
func systemPrompt(contextBlock string) string {
	return fmt.Sprintf(`Answer directly based on the following information. Be conversational and get to the point.

%s

Answer the user's question using this information in a natural, direct way.`, contextBlock)
}
