package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyBuilder(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantPrefix  string
	}{
		{"production", "production", "prod"},
		{"development", "development", "staging"},
		{"staging", "staging", "staging"},
		{"unknown defaults to prod", "something-else", "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.wantPrefix, kb.GetPrefix())
		})
	}
}

func TestKeyBuilderKeys(t *testing.T) {
	kb := NewKeyBuilder("production")

	assert.Equal(t, "prod:hunt:member:m1:team", kb.KeyTeamByMember("m1"))
	assert.Equal(t, "prod:hunt:team:t1:solved:q1", kb.KeySolved("t1", "q1"))
	assert.Equal(t, "prod:hunt:credit:t1:q1", kb.KeyCreditLock("t1", "q1"))
}
