package main

import (
	"github.com/streamvision/datagen/internal/biz"
	"github.com/streamvision/datagen/internal/data"
	"github.com/streamvision/datagen/internal/export"
)

// app bundles the wired components the subcommands need.
type app struct {
	data     *data.Data
	pipeline *biz.Pipeline
	exporter *export.Exporter
}

func newApp(d *data.Data, pipeline *biz.Pipeline, exporter *export.Exporter) *app {
	return &app{
		data:     d,
		pipeline: pipeline,
		exporter: exporter,
	}
}
