package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyTeamByMember caches which team a member belongs to.
func (kb *KeyBuilder) KeyTeamByMember(memberID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyTeamByMember, memberID))
}

// KeySolved marks a (team, question) pair as already credited.
func (kb *KeyBuilder) KeySolved(teamID, questionID string) string {
	return kb.BuildKey(fmt.Sprintf(KeySolved, teamID, questionID))
}

// KeyCreditLock is the idempotency lock taken before the credit write.
func (kb *KeyBuilder) KeyCreditLock(teamID, questionID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyCreditLock, teamID, questionID))
}
