package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all top-level content of one setup file.
type fileRoot struct {
	Locals         []*localsBlock        `hcl:"locals,block"`
	Output         *string               `hcl:"output,optional"`
	Connector      *string               `hcl:"connector,optional"`
	Distributions  hcl.Expression        `hcl:"distributions,optional"`
	Sources        []*sourceBlock        `hcl:"source,block"`
	Luminosities   []*luminosityBlock    `hcl:"luminosity,block"`
	Polarizations  []*polarizationBlock  `hcl:"polarization,block"`
	PolConfigs     []*polConfigBlock     `hcl:"pol_config,block"`
	Normalizations []*normalizationBlock `hcl:"normalization,block"`
}

// localsBlock is decoded separately, before the rest of the file.
type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type sourceBlock struct {
	Name   string  `hcl:"name,label"`
	Path   string  `hcl:"path"`
	Energy float64 `hcl:"energy"`
}

type luminosityBlock struct {
	Energy      float64 `hcl:"energy"`
	Value       float64 `hcl:"value"`
	Uncertainty float64 `hcl:"uncertainty,optional"`
}

type polarizationBlock struct {
	Label       string  `hcl:"label,label"`
	Energy      float64 `hcl:"energy"`
	Magnitude   float64 `hcl:"magnitude"`
	Uncertainty float64 `hcl:"uncertainty,optional"`
}

type polConfigBlock struct {
	Name         string  `hcl:"name,label"`
	Energy       float64 `hcl:"energy"`
	Electron     string  `hcl:"electron"`
	Positron     string  `hcl:"positron"`
	ElectronSign string  `hcl:"electron_sign"`
	PositronSign string  `hcl:"positron_sign"`
	Fraction     float64 `hcl:"fraction"`
}

type normalizationBlock struct {
	Name         string   `hcl:"name,label"`
	Distribution string   `hcl:"distribution"`
	Channel      string   `hcl:"channel,optional"`
	Factor       *float64 `hcl:"factor,optional"`
	Energy       *float64 `hcl:"energy,optional"`
}
