package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

const (
	// TokenDecimals is the number of decimal places of the reward token.
	TokenDecimals = 6

	// TokenSymbol is the display symbol of the reward token.
	TokenSymbol = "AST"

	// RewardQuantum is the amount, in base units, granted per accepted review
	// (5,000 AST).
	RewardQuantum uint64 = 5_000 * 1_000_000

	// CooldownSeconds is the minimum time between two promotions of pending
	// rewards into the withdrawable bucket.
	CooldownSeconds int64 = 300
)
