package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/toymeas/internal/connector"
	"github.com/specialistvlad/toymeas/internal/distrio"
	"github.com/specialistvlad/toymeas/internal/model"
	"github.com/specialistvlad/toymeas/internal/toygen"
)

// Summary describes a finished validate or run.
type Summary struct {
	RunID    string
	Energies []model.Energy
	// Results counts toy results per energy. Empty for a validate.
	Results map[model.Energy]int
	// Outputs lists the files written, in energy order.
	Outputs []string
}

// Validate loads and finalizes the setup without generating anything.
func (a *App) Validate(ctx context.Context) (*Summary, error) {
	ctx = a.context(ctx)
	_, s, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	ls, err := s.Finalize(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Setup is valid.", "energies", len(ls.Energies()))
	return &Summary{RunID: a.runID, Energies: ls.Energies()}, nil
}

// Run executes the full pipeline and writes one output file per energy.
// Either every output file is written or none is.
func (a *App) Run(ctx context.Context) (*Summary, error) {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	m, s, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	ls, err := s.Finalize(ctx)
	if err != nil {
		return nil, err
	}

	conn := a.connector
	if conn == nil {
		name := m.Connector
		if a.cfg.Connector != "" {
			name = a.cfg.Connector
		}
		if conn, err = connector.ByName(name); err != nil {
			return nil, err
		}
		a.logger.Debug("Data connector selected.", "connector", name)
	}

	a.logger.Info("Generating expected distributions.", "energies", len(ls.Energies()))
	all, err := toygen.New(conn, ls).GenerateAll(ctx)
	if err != nil {
		return nil, err
	}

	output := m.Output
	if a.cfg.Output != "" {
		output = a.cfg.Output
	}
	if output == "" {
		output = DefaultOutput
	}

	sum := &Summary{RunID: a.runID, Energies: ls.Energies(), Results: make(map[model.Energy]int)}
	paths := OutputPaths(output, sum.Energies)
	files := make([]distrio.File, len(sum.Energies))
	for i, e := range sum.Energies {
		files[i] = distrio.File{Energy: e, Results: all[e], Destination: paths[i]}
	}
	if err := distrio.WriteAll(files); err != nil {
		return nil, err
	}
	for _, f := range files {
		sum.Results[f.Energy] = len(f.Results)
		sum.Outputs = append(sum.Outputs, f.Destination)
		a.logger.Info("Wrote expected distributions.", "energy", f.Energy, "results", len(f.Results), "path", f.Destination)
	}

	a.logger.Debug("App.Run method finished.")
	return sum, nil
}

// OutputPaths maps energies to output files. A single energy writes to
// output itself; several energies get "_<energy>" inserted before the
// extension.
func OutputPaths(output string, energies []model.Energy) []string {
	if len(energies) == 1 {
		return []string{output}
	}
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	out := make([]string, len(energies))
	for i, e := range energies {
		out[i] = base + "_" + e.String() + ext
	}
	return out
}
