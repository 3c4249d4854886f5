package testutil

// DefaultRunToken is stamped on traces whose scenario sets no run_token.
const DefaultRunToken = "test-run-default"

// FixedTokenGenerator returns the same run token on every call, so a scenario
// replayed any number of times yields byte-identical golden snapshots.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator returns a generator for token, or for
// DefaultRunToken when token is empty.
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = DefaultRunToken
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed token.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
