package domain

const (
	// MaxWorryLength is the server-side limit in characters
	MaxWorryLength = 500
	// ClientWorryLimit is the soft cap enforced by the input field
	ClientWorryLimit = 280
	// FeedReward is the XP granted per completed feed
	FeedReward = 20
)

// Fixed texts returned by the worry service
const (
	SilentResponse  = "The Baku eats your worry in silence."
	SafetyResponse  = "Your burden is heavy. Please seek a guide in the waking world who can help you carry it.\n988 Suicide & Crisis Lifeline"
	InternalMessage = "The Baku creates a strange noise. Try again later."
)

// Fixed texts shown by the client
const (
	MessageUnauthenticated = "The Baku awaits a known soul. Please sign in and try again."
	MessageInvalidInput    = "The Baku cannot digest this worry. Keep it brief."
	MessageConfusion       = "The Baku turns its head in confusion. (Connection error)"
	MessageFallback        = "The Baku turns its head away. Something is wrong (Check backend/network)."
	devMessagePrefix       = "The wind is silent... (Error: "
)

// DevMessage returns the verbose diagnostic shown in development builds
func DevMessage(diagnostic string) string {
	return devMessagePrefix + diagnostic + ")"
}

// WorryRequest is the payload sent to the worry service
type WorryRequest struct {
	Text     string `json:"text"`
	BotField string `json:"botField"`
}

// WorryResponse is the payload returned on success
type WorryResponse struct {
	Response string `json:"response"`
}

// Outcome is the tagged result of processing a worry.
// AbuseDetected outcomes look like successes on the wire.
type Outcome struct {
	Response      string
	Accepted      bool
	AbuseDetected bool
	CrisisScreen  bool
}
