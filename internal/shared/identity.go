package shared

// BotUserID is the reserved sentinel identity for the server-controlled
// Bingo participant. It is disjoint from every human userId; callers must
// never be allowed to register it as their own.
const BotUserID = "__bot__"

// BotUsername is the display name attached to the bot's Player entry.
const BotUsername = "Bot"

// Identity is the authenticated caller supplied by the upstream HTTP layer
// on every operation. The core never constructs one itself except for the
// Bot sentinel.
type Identity struct {
	UserID   string
	Username string
}

// IsBot reports whether this identity is the reserved bot sentinel.
func (id Identity) IsBot() bool {
	return id.UserID == BotUserID
}

// BotIdentity returns the fixed identity used for bot-authored moves.
func BotIdentity() Identity {
	return Identity{UserID: BotUserID, Username: BotUsername}
}

// MinUsernameLength and MaxUsernameLength bound a caller's display name,
// enforced by every game's Create and Join.
const (
	MinUsernameLength = 1
	MaxUsernameLength = 32
)

// ValidateUsername rejects identities whose username falls outside the
// bounds every room coordinator enforces at the door.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return ErrUsernameLength
	}
	return nil
}
