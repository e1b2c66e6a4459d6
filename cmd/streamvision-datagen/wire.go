//go:build wireinject
// +build wireinject

package main

import (
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/streamvision/datagen/internal/biz"
	"github.com/streamvision/datagen/internal/conf"
	"github.com/streamvision/datagen/internal/data"
	"github.com/streamvision/datagen/internal/export"
)

// wireApp builds the application graph.
func wireApp(*conf.Data, *conf.Export, log.Logger) (*app, func(), error) {
	panic(wire.Build(data.ProviderSet, biz.ProviderSet, export.NewExporter, newApp))
}
