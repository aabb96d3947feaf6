package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internfinder/internfinder-client/internal/api"
	"github.com/internfinder/internfinder-client/internal/models"
)

func TestProfileCache_RoundTrip(t *testing.T) {
	c := NewProfileCache(time.Minute)
	assert.Nil(t, c.Get())

	snap := &api.ProfileSnapshot{Profile: &models.Profile{Name: "Asha"}}
	c.Set(snap)

	got := c.Get()
	require.NotNil(t, got)
	assert.Equal(t, "Asha", got.Profile.Name)
}

func TestProfileCache_Invalidate(t *testing.T) {
	c := NewProfileCache(time.Minute)
	c.Set(&api.ProfileSnapshot{})
	require.NotNil(t, c.Get())

	c.Invalidate()
	assert.Nil(t, c.Get())
}

func TestProfileCache_Expires(t *testing.T) {
	c := NewProfileCache(10 * time.Millisecond)
	c.Set(&api.ProfileSnapshot{})

	time.Sleep(30 * time.Millisecond)
	assert.Nil(t, c.Get())
}
