//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

// InitializeApp builds the full application graph. The returned cleanup
// closes database connections.
func InitializeApp() (*App, func(), error) {
	wire.Build(appSet)
	return nil, nil, nil
}
