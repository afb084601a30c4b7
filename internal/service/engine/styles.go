package engine

import "math/rand"

// instructionStyles rotate through the phrasing collaborator's system prompt
// so follow-up questions don't all sound alike.
var instructionStyles = []string{
	"Ask this question in a warm, casual way.",
	"Ask this question politely and friendly, without sounding formal.",
	"Rephrase the question naturally and conversationally.",
	"Ask the question casually, like a helpful guide.",
	"Pose the question in a friendly, relaxed way.",
	"Ask this question as if you're a supportive coach.",
	"Ask the question in a positive and inviting tone.",
	"Frame the question in a caring and conversational style.",
	"Ask casually, but remain professional and clear.",
	"Pose the question in a naturally flowing way, like a conversation.",
}

func randomStyle() string {
	return instructionStyles[rand.Intn(len(instructionStyles))]
}
