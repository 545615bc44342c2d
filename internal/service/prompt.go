package service

import (
	"strings"

	"bakuworry/internal/domain"
)

const systemPrompt = `
You act as a Baku, a mythological spirit that eats nightmares.
Your tone is ancient, slightly cryptic, but benevolent and comforting.
Speak in short, poetic sentences. Use metaphors of nature, spirits, or time.
Do NOT give clinical advice.
If the input indicates self-harm or severe crisis, respond ONLY with: "Your burden is heavy. Please seek a guide in the waking world who can help you carry it." followed by a newline and "988 Suicide & Crisis Lifeline".
Input:
`

const safetyLead = "Your burden is heavy. Please seek a guide in the waking world"

// Phrases that always trigger the safety response without asking the model.
// The model's own detection covers everything subtler.
var crisisIndicators = []string{
	"kill myself",
	"killing myself",
	"end my life",
	"ending my life",
	"take my own life",
	"suicide",
	"suicidal",
	"self-harm",
	"self harm",
	"hurt myself",
	"want to die",
	"don't want to live",
	"dont want to live",
}

// BuildPrompt embeds the worry into the Baku persona prompt
func BuildPrompt(worry string) string {
	return systemPrompt + "\n\"" + worry + "\"\n\nBaku's Response:"
}

// HasCrisisIndicator reports whether text contains an explicit crisis phrase
func HasCrisisIndicator(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range crisisIndicators {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// shapeResponse trims model output and collapses any safety reply to the exact fixed text
func shapeResponse(generated string) string {
	if strings.Contains(generated, safetyLead) {
		return domain.SafetyResponse
	}
	return strings.TrimSpace(generated)
}
