package distrio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/specialistvlad/toymeas/internal/model"
)

// Encode serializes results to w in the given order.
func Encode(w io.Writer, energy model.Energy, results []model.ToyResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Energy = %s\n\n", energy)
	for _, r := range results {
		bw.WriteString(BeginMarker + "\n")
		fmt.Fprintf(bw, "Name: %s\n", r.Distribution)
		fmt.Fprintf(bw, "PolConfig: %s\n", r.PolConfig)
		fmt.Fprintf(bw, "NBins: %d\n", r.NBins())
		fmt.Fprintf(bw, "Dim: %d\n", r.Dim)

		bw.WriteString("Bin-ID ")
		for d := 0; d < r.Dim; d++ {
			fmt.Fprintf(bw, "d%d ", d)
		}
		bw.WriteString(" val\n")

		for b, v := range r.Values {
			fmt.Fprintf(bw, "B%d ", b)
			if b < len(r.Centers) {
				for _, x := range r.Centers[b] {
					bw.WriteString(formatFloat(x) + " ")
				}
			}
			bw.WriteString(formatFloat(v) + "\n")
		}
		bw.WriteString(EndMarker + "\n\n")
	}
	return bw.Flush()
}

// File is one energy's results bound for a destination path.
type File struct {
	Energy      model.Energy
	Results     []model.ToyResult
	Destination string
}

// Write serializes results to destination. The content is written to a
// temporary file next to destination and renamed over it, so destination is
// either fully replaced or left untouched. The parent directory must exist.
func Write(energy model.Energy, results []model.ToyResult, destination string) error {
	return WriteAll([]File{{Energy: energy, Results: results, Destination: destination}})
}

// WriteAll writes every file or none. All files are encoded to temporary
// files before any destination is replaced. If a replacement fails, the
// destinations already replaced get their previous content back.
func WriteAll(files []File) (err error) {
	const op = "distrio.write"

	staged := make([]*pending, 0, len(files))
	defer func() {
		for _, p := range staged {
			if err != nil {
				p.rollback()
			} else {
				p.release()
			}
		}
	}()

	for _, f := range files {
		p, err := stage(f)
		if err != nil {
			return model.PathErrorf(op, f.Destination, model.ErrDestination, err)
		}
		staged = append(staged, p)
	}
	for _, p := range staged {
		if info, err := os.Stat(p.dest); err == nil && info.IsDir() {
			return model.PathErrorf(op, p.dest, model.ErrDestination, fmt.Errorf("%s is a directory", p.dest))
		}
	}
	for _, p := range staged {
		if err := p.commit(); err != nil {
			return model.PathErrorf(op, p.dest, model.ErrDestination, err)
		}
	}
	return nil
}

// pending is an encoded temporary file waiting to replace dest.
type pending struct {
	dest   string
	tmp    string
	backup string
	done   bool
}

func stage(f File) (p *pending, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(f.Destination), "."+filepath.Base(f.Destination)+".*.tmp")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, f.Energy, f.Results); err != nil {
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return nil, err
	}
	return &pending{dest: f.Destination, tmp: tmp.Name()}, nil
}

// commit keeps the previous destination as a backup, then renames the
// temporary file over it.
func (p *pending) commit() error {
	if _, err := os.Lstat(p.dest); err == nil {
		backup := p.tmp + ".prev"
		if err := os.Link(p.dest, backup); err != nil {
			if err := os.Rename(p.dest, backup); err != nil {
				return err
			}
		}
		p.backup = backup
	}
	if err := os.Rename(p.tmp, p.dest); err != nil {
		return err
	}
	p.done = true
	return nil
}

func (p *pending) rollback() {
	if !p.done {
		_ = os.Remove(p.tmp)
	}
	switch {
	case p.backup != "":
		_ = os.Rename(p.backup, p.dest)
	case p.done:
		_ = os.Remove(p.dest)
	}
}

func (p *pending) release() {
	if p.backup != "" {
		_ = os.Remove(p.backup)
	}
}

// formatFloat matches the fixed six-decimal rendering of the format.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
