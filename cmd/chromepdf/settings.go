package main

import (
	"context"
	"errors"

	chromepdf "github.com/alnah/go-chromepdf"
	"github.com/alnah/go-chromepdf/internal/config"
)

// ErrDefaultRenderer is returned when the config selects the default
// renderer, which a standalone CLI does not have.
var ErrDefaultRenderer = errors.New("default renderer not available")

var (
	_ chromepdf.Settings = configSettings{}
	_ chromepdf.Session  = configSession{}
	_ chromepdf.Backend  = unavailableBackend{}
)

// configSettings serves the resolved CLI config as renderer settings.
// The password is left out: the render command decides when to encrypt.
type configSettings struct {
	cfg *config.Config
}

func (s configSettings) UseBrowserRenderer(context.Context) (bool, error) {
	return s.cfg.RendererEnabled(), nil
}

func (s configSettings) RenderOptions(context.Context) (chromepdf.RenderOptions, error) {
	p := s.cfg.Page
	return chromepdf.OptionsFromMap(map[string]string{
		chromepdf.KeyPageSize:     p.Size,
		chromepdf.KeyPageWidth:    p.Width,
		chromepdf.KeyPageHeight:   p.Height,
		chromepdf.KeyMarginTop:    p.MarginTop,
		chromepdf.KeyMarginBottom: p.MarginBottom,
		chromepdf.KeyMarginLeft:   p.MarginLeft,
		chromepdf.KeyMarginRight:  p.MarginRight,
	}), nil
}

// configSession is the site the rendered HTML came from.
type configSession struct {
	cfg *config.Config
}

func (s configSession) BaseURL() string   { return s.cfg.Site.BaseURL }
func (s configSession) SessionID() string { return s.cfg.Site.SessionID }

// unavailableBackend stands in for the host's built-in renderer.
type unavailableBackend struct{}

func (unavailableBackend) GetPDF(context.Context, chromepdf.Request) (*chromepdf.Document, error) {
	return nil, ErrDefaultRenderer
}
