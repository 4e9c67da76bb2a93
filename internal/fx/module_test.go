package fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
)

func TestAppModule_Graph(t *testing.T) {
	assert.NoError(t, fx.ValidateApp(AppModule))
}
