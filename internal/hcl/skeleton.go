package hcl

import (
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// SkeletonOptions parameterizes WriteSkeleton.
type SkeletonOptions struct {
	Energy        float64
	Output        string
	Source        string
	Distributions []string
}

type skeletonPol struct {
	label     string
	magnitude float64
}

type skeletonConfig struct {
	name, electron, positron, eSign, pSign string
	fraction                               float64
}

// Beam polarizations and sharing of a standard four-config run.
var (
	skeletonPols = []skeletonPol{
		{"ePol-", 0.8}, {"ePol+", 0.8}, {"pPol-", 0.3}, {"pPol+", 0.3},
	}
	skeletonConfigs = []skeletonConfig{
		{"e-p+", "ePol-", "pPol+", "-", "+", 0.45},
		{"e+p-", "ePol+", "pPol-", "+", "-", 0.45},
		{"e-p-", "ePol-", "pPol-", "-", "-", 0.05},
		{"e+p+", "ePol+", "pPol+", "+", "+", 0.05},
	}
)

// WriteSkeleton renders a complete, loadable starter setup to w.
func WriteSkeleton(w io.Writer, opts SkeletonOptions) error {
	if opts.Energy <= 0 {
		opts.Energy = 250
	}
	if opts.Output == "" {
		opts.Output = "output/selection_result.out"
	}
	if opts.Source == "" {
		opts.Source = "distributions.yaml"
	}
	if len(opts.Distributions) == 0 {
		opts.Distributions = []string{"Zhadronic", "Zleptonic"}
	}

	f := hclwrite.NewEmptyFile()
	root := f.Body()
	energy := hcl.Traversal{hcl.TraverseRoot{Name: "local"}, hcl.TraverseAttr{Name: "energy"}}

	locals := root.AppendNewBlock("locals", nil).Body()
	locals.SetAttributeValue("energy", cty.NumberFloatVal(opts.Energy))
	root.AppendNewline()

	root.SetAttributeValue("output", cty.StringVal(opts.Output))
	root.SetAttributeValue("connector", cty.StringVal("chiral"))
	root.AppendNewline()

	src := root.AppendNewBlock("source", []string{"main"}).Body()
	src.SetAttributeValue("path", cty.StringVal(opts.Source))
	src.SetAttributeTraversal("energy", energy)
	root.AppendNewline()

	names := make([]cty.Value, len(opts.Distributions))
	for i, n := range opts.Distributions {
		names[i] = cty.StringVal(n)
	}
	root.SetAttributeValue("distributions", cty.ListVal(names))
	root.AppendNewline()

	lumi := root.AppendNewBlock("luminosity", nil).Body()
	lumi.SetAttributeTraversal("energy", energy)
	lumi.SetAttributeValue("value", cty.NumberIntVal(2000))
	lumi.SetAttributeValue("uncertainty", cty.NumberIntVal(1))

	for _, p := range skeletonPols {
		root.AppendNewline()
		b := root.AppendNewBlock("polarization", []string{p.label}).Body()
		b.SetAttributeTraversal("energy", energy)
		b.SetAttributeValue("magnitude", cty.NumberFloatVal(p.magnitude))
		b.SetAttributeValue("uncertainty", cty.NumberFloatVal(0.0001))
	}

	for _, c := range skeletonConfigs {
		root.AppendNewline()
		b := root.AppendNewBlock("pol_config", []string{c.name}).Body()
		b.SetAttributeTraversal("energy", energy)
		b.SetAttributeValue("electron", cty.StringVal(c.electron))
		b.SetAttributeValue("positron", cty.StringVal(c.positron))
		b.SetAttributeValue("electron_sign", cty.StringVal(c.eSign))
		b.SetAttributeValue("positron_sign", cty.StringVal(c.pSign))
		b.SetAttributeValue("fraction", cty.NumberFloatVal(c.fraction))
	}

	_, err := f.WriteTo(w)
	return err
}
