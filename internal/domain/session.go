package domain

// BakuState represents the Baku's current interaction state
type BakuState string

const (
	StateSleeping   BakuState = "SLEEPING"
	StateWaking     BakuState = "WAKING"
	StateEating     BakuState = "EATING"
	StateProcessing BakuState = "PROCESSING"
	StateIdle       BakuState = "IDLE"
)

// Transition records a single state change
type Transition struct {
	From BakuState
	To   BakuState
}

// OnboardingStep is one screen of the onboarding sequence
type OnboardingStep struct {
	Title       string
	Description string
}

// OnboardingSteps is the fixed, linear onboarding sequence
var OnboardingSteps = []OnboardingStep{
	{
		Title:       "The Baku",
		Description: "I am the eater of nightmares. I hunger for your worries.",
	},
	{
		Title:       "Feed Me",
		Description: "Write down what burdens you. A sentence is enough.",
	},
	{
		Title:       "Let Go",
		Description: "I will devour your worry. It will be gone forever. Safe.",
	},
}

// Local storage keys
const (
	KeyOnboardingSeen = "hasSeenOnboarding"
	KeyXP             = "baku_xp"
	KeyLevel          = "baku_level"
	KeyIdentityToken  = "baku_identity_token"
	KeyIdentityUID    = "baku_identity_uid"
)
