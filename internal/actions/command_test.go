package actions

import (
	"testing"

	"github.com/stretchr/testify/require"

	stackyerrors "stacky.dev/stacky/internal/errors"
)

type unknownCommand struct{}

func (unknownCommand) command() {}

func TestExecuteUnknownCommand(t *testing.T) {
	err := Execute(nil, unknownCommand{})
	require.ErrorIs(t, err, stackyerrors.ErrUser)
}
