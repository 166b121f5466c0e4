package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingDefaultsAndPersistence(t *testing.T) {
	setup(t)
	defer teardown()

	service := SettingService{}

	port, err := service.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	lifetime, err := service.GetTokenLifetimeHours()
	require.NoError(t, err)
	assert.Equal(t, 72, lifetime)

	twoFactor, err := service.GetTwoFactorEnable()
	require.NoError(t, err)
	assert.False(t, twoFactor)

	require.NoError(t, service.SetPort(9090))
	port, err = service.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 9090, port)

	_, err = service.getString("no-such-key")
	assert.Error(t, err)
}

func TestResetSettings(t *testing.T) {
	setup(t)
	defer teardown()

	service := SettingService{}
	require.NoError(t, service.SetPort(9090))
	require.NoError(t, service.ResetSettings())

	port, err := service.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 8080, port)
}
