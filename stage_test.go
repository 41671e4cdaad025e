package screenplay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay"
)

func TestStage(t *testing.T) {
	pads := map[string]*notepad{}
	stage := screenplay.NewStage(func(name string) *screenplay.Actor {
		pads[name] = &notepad{}
		return screenplay.Named(name).WhoCan(pads[name])
	})

	_, err := stage.TheActorInTheSpotlight()
	assert.ErrorIs(t, err, screenplay.ErrEmptyStage)

	toby := stage.TheActorCalled("Toby")
	assert.Same(t, toby, stage.TheActorCalled("Toby"))

	tina := stage.TheActorCalled("Tina")
	inSpotlight, err := stage.TheActorInTheSpotlight()
	require.NoError(t, err)
	assert.Same(t, tina, inSpotlight)

	require.NoError(t, stage.DrawTheCurtain())
	assert.True(t, pads["Toby"].tornDown)
	assert.True(t, pads["Tina"].tornDown)

	_, err = stage.TheActorInTheSpotlight()
	assert.ErrorIs(t, err, screenplay.ErrEmptyStage)
	assert.NotSame(t, toby, stage.TheActorCalled("Toby"))
}
