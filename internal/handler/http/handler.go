// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/spf13/afero"

	"github.com/MKhiriev/frontkit/internal/descriptor"
	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/internal/metrics"
	"github.com/MKhiriev/frontkit/internal/proxy"
	"github.com/MKhiriev/frontkit/internal/service"
	"github.com/MKhiriev/frontkit/internal/utils"
)

// Handler serves one of the two servers. Exactly one of dev and preview is
// set.
type Handler struct {
	dev     service.DevService
	preview service.PreviewService
	desc    *descriptor.Descriptor
	fs      afero.Fs

	metrics *metrics.Metrics
	ids     *utils.UUIDGenerator
	proxies *dynamicProxy

	logger *logger.Logger
}

// NewDevHandler returns the handler of the dev server. Files of the public
// dir are read from fs. m may be nil.
func NewDevHandler(dev service.DevService, fs afero.Fs, m *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Debug().Msg("dev http handler created")
	h := &Handler{
		dev:     dev,
		fs:      fs,
		metrics: m,
		ids:     utils.NewUUIDGenerator(),
		logger:  logger,
	}
	h.proxies = newDynamicProxy(dev.Descriptor, h.proxyObserver(), logger)
	return h
}

// NewPreviewHandler returns the handler of the preview server for the build
// described by desc.
func NewPreviewHandler(preview service.PreviewService, desc *descriptor.Descriptor, logger *logger.Logger) *Handler {
	logger.Debug().Msg("preview http handler created")
	h := &Handler{
		preview: preview,
		desc:    desc,
		ids:     utils.NewUUIDGenerator(),
		logger:  logger,
	}
	h.proxies = newDynamicProxy(func() *descriptor.Descriptor { return desc }, nil, logger)
	return h
}

func (h *Handler) proxyObserver() proxy.Observer {
	if h.metrics == nil {
		return nil
	}
	return h.metrics
}
