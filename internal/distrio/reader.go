package distrio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/specialistvlad/toymeas/internal/model"
)

// ReadFile parses a file written by Write.
func ReadFile(path string) (model.Energy, []model.ToyResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, model.PathErrorf("distrio.read_file", path, model.ErrSourceRead, err)
	}
	defer f.Close()

	energy, results, err := decode(f)
	if err != nil {
		return 0, nil, model.PathErrorf("distrio.read_file", path, model.ErrSourceRead, err)
	}
	return energy, results, nil
}

// Read parses the block format. Lines outside of blocks other than the
// energy line are ignored.
func Read(r io.Reader) (model.Energy, []model.ToyResult, error) {
	energy, results, err := decode(r)
	if err != nil {
		return 0, nil, &model.OpError{
			Op:   "distrio.read",
			Kind: model.KindExecution,
			Err:  fmt.Errorf("%w: %w", model.ErrSourceRead, err),
		}
	}
	return energy, results, nil
}

func decode(r io.Reader) (model.Energy, []model.ToyResult, error) {
	var (
		energy  model.Energy
		results []model.ToyResult
		block   []string
		inBlock bool
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == BeginMarker:
			inBlock = true
			block = block[:0]
		case line == EndMarker:
			if inBlock && len(block) > 0 {
				res, err := parseBlock(block)
				if err != nil {
					return 0, nil, err
				}
				res.Energy = energy
				results = append(results, res)
			}
			inBlock = false
			block = block[:0]
		case inBlock:
			block = append(block, line)
		case strings.HasPrefix(line, "Energy"):
			e, err := parseEnergy(line)
			if err != nil {
				return 0, nil, err
			}
			energy = e
		}
	}
	if err := sc.Err(); err != nil {
		return 0, nil, err
	}
	if inBlock {
		return 0, nil, errors.New("unterminated distribution block")
	}
	return energy, results, nil
}

func parseEnergy(line string) (model.Energy, error) {
	_, value, ok := strings.Cut(line, "=")
	if !ok {
		return 0, fmt.Errorf("malformed energy line %q", line)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed energy line %q: %w", line, err)
	}
	e := model.Energy(f)
	if !e.Valid() {
		return 0, fmt.Errorf("energy %v must be positive", f)
	}
	return e, nil
}

func parseBlock(lines []string) (model.ToyResult, error) {
	var (
		res   model.ToyResult
		nBins int
		err   error
	)
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "Name:":
			res.Distribution = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
		case "PolConfig:":
			res.PolConfig = strings.TrimSpace(strings.TrimPrefix(line, "PolConfig:"))
		case "NBins:":
			if nBins, err = headerInt(fields); err != nil {
				return res, err
			}
		case "Dim:":
			if res.Dim, err = headerInt(fields); err != nil {
				return res, err
			}
		case "Bin-ID":
			return parseBins(res, nBins, lines[i+1:])
		}
	}
	return res, fmt.Errorf("distribution %q has no Bin-ID header", res.Distribution)
}

func parseBins(res model.ToyResult, nBins int, lines []string) (model.ToyResult, error) {
	if len(lines) < nBins {
		return res, fmt.Errorf("distribution %q declares %d bins but has %d", res.Distribution, nBins, len(lines))
	}
	res.Centers = make([][]float64, nBins)
	res.Values = make([]float64, nBins)
	for b := 0; b < nBins; b++ {
		fields := strings.Fields(lines[b])
		if len(fields) < res.Dim+2 {
			return res, fmt.Errorf("distribution %q bin %d: expected %d columns, got %d", res.Distribution, b, res.Dim+2, len(fields))
		}
		centers := make([]float64, res.Dim)
		for d := 0; d < res.Dim; d++ {
			c, err := strconv.ParseFloat(fields[d+1], 64)
			if err != nil {
				return res, fmt.Errorf("distribution %q bin %d center %d: %w", res.Distribution, b, d, err)
			}
			centers[d] = c
		}
		v, err := strconv.ParseFloat(fields[res.Dim+1], 64)
		if err != nil {
			return res, fmt.Errorf("distribution %q bin %d value: %w", res.Distribution, b, err)
		}
		res.Centers[b] = centers
		res.Values[b] = v
	}
	return res, nil
}

func headerInt(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("header %q has no value", fields[0])
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("header %s: %w", fields[0], err)
	}
	if n < 0 {
		return 0, fmt.Errorf("header %s must not be negative", fields[0])
	}
	return n, nil
}
