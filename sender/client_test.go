package sender

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/routego/tg"
)

const testToken = "123456789:ABCdefGHIjklMNOpqrSTUvwxYZ"

func TestNew_RejectsMalformedToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no colon", "123456789ABCdef"},
		{"non-numeric id", "abc:ABCdefGHIjklMNOpqrSTUvwxYZ"},
		{"empty secret", "123456789:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, tg.ErrInvalidToken)
		})
	}
}

func TestClientClose_Idempotent(t *testing.T) {
	client, err := New(testToken)
	require.NoError(t, err)

	err = client.Close()
	assert.NoError(t, err)

	// Repeat closes are no-ops, not panics
	err = client.Close()
	assert.NoError(t, err)

	err = client.Close()
	assert.NoError(t, err)
}

func TestClientClose_Concurrent(t *testing.T) {
	client, err := New(testToken)
	require.NoError(t, err)

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_ = client.Close()
		}()
	}

	wg.Wait()
}

func TestNewFromConfig_StartsLimiterCleanup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Token = tg.SecretToken(testToken)
	client, err := NewFromConfig(cfg)
	require.NoError(t, err)

	assert.NotNil(t, client.cleanupTicker)

	err = client.Close()
	assert.NoError(t, err)

	err = client.Close()
	assert.NoError(t, err)
}
