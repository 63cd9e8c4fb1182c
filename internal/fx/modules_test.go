package fx

import (
	"testing"

	"academy-ledger/internal/server"

	"github.com/alecthomas/assert/v2"
	"go.uber.org/fx"
)

func TestModuleGraphIsComplete(t *testing.T) {
	err := fx.ValidateApp(
		Module,
		fx.Invoke(func(*server.Server) {}),
	)
	assert.NoError(t, err)
}
