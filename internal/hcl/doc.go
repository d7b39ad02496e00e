// Package hcl provides the HCL implementation of config.Loader and renders
// starter setup files.
//
// A setup is one .hcl file or a directory of them, merged in lexical file
// order. Recognized top-level content:
//
//	locals { energy = 250 }
//	output    = "output/selection_result.out"
//	connector = "chiral"
//
//	source "rk" {
//	  path   = "rk.yaml"
//	  energy = local.energy
//	}
//
//	distributions = ["Zhadronic", "Zleptonic"]
//
//	luminosity {
//	  energy      = local.energy
//	  value       = 2000
//	  uncertainty = 1
//	}
//
//	polarization "ePol-" {
//	  energy      = local.energy
//	  magnitude   = 0.8
//	  uncertainty = 0.0001
//	}
//
//	pol_config "e-p+" {
//	  energy        = local.energy
//	  electron      = "ePol-"
//	  positron      = "pPol+"
//	  electron_sign = "-"
//	  positron_sign = "+"
//	  fraction      = 0.45
//	}
//
//	normalization "WW_mu_only" {
//	  distribution = "WWsemileptonic"
//	  channel      = "mu"
//	  factor       = 0.25
//	}
//
// Locals from every file share one namespace and may reference each other.
// Relative source paths are resolved against the directory of the file that
// declares them.
package hcl
