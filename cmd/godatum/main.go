// Copyright (c) 2026 ktnk. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.23
//

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	m "github.com/ktnk/godatum"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		m.PrintE(err)
		flag.Usage()
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt) error {

	// Load datum definitions
	datums, err := loadDatums(args.defFn)
	if err != nil {
		return fmt.Errorf("failed to load datum definitions: %w", err)
	}

	src, ok := datums[strings.ToLower(args.from)]
	if !ok {
		return fmt.Errorf("unknown source datum %q", args.from)
	}
	dst, ok := datums[strings.ToLower(args.to)]
	if !ok {
		return fmt.Errorf("unknown target datum %q", args.to)
	}

	// Search for the transformation
	var aoi *m.Extent
	if args.aoi != nil {
		aoi = args.aoi
	}
	if !args.epoch.IsZero() {
		t := args.epoch.Time()
		if aoi == nil {
			aoi = m.NewTemporalExtent(t, t)
		} else {
			aoi = aoi.WithTime(t, t)
		}
	}
	tr, ok := src.PositionVectorTransformation(dst, aoi)
	if !ok {
		return fmt.Errorf("no transformation path from %q to %q", src.Base().Name, dst.Base().Name)
	}
	if tr.Indirect {
		m.PrintD(1, "transformation is composed through an intermediate datum\n")
	}
	if m.DBG_ >= 2 {
		m.PrintMat(tr.Matrix)
	}

	// Prepare input and output
	in, err := prepareInput(args)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()
	out, err := prepareOutput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	defer out.Close()

	// Transform positions line by line
	return processPositions(in, out, src, dst, tr)
}

// Transform whitespace-separated "lat lon hei" lines (degrees, metres)
func processPositions(in io.Reader, out io.Writer, src, dst *m.GeodeticDatum, tr *m.Transformation) error {
	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "%") {
			continue
		}
		var llh m.PosLLH
		if err := llh.Set(line); err != nil {
			m.PrintA("line %d: %s\n", lineNo, err.Error())
			continue
		}
		xyz := src.Ellipsoid().ToGeocentric(llh)
		sxyz := xyz.Transform(tr.Matrix)
		res := dst.Ellipsoid().ToGeodetic(sxyz)
		m.PrintD(3, "xyz: %.4f %.4f %.4f -> %.4f %.4f %.4f\n", xyz.X, xyz.Y, xyz.Z, sxyz.X, sxyz.Y, sxyz.Z)
		fmt.Fprintf(out, "%s\n", res.String())
	}
	return sc.Err()
}

// Open the input file, or stdin if none was given
func prepareInput(args cmdOpt) (io.ReadCloser, error) {
	if len(args.inFn) == 0 {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(args.inFn)
}

// Prepare output file
func prepareOutput(args cmdOpt) (io.WriteCloser, error) {

	// Use stdout if no output file is specified
	if len(args.outFn) == 0 {
		return &nopCloser{os.Stdout}, nil
	}

	// Create output file
	f, err := os.Create(args.outFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// nopCloser - WriteCloser that ignores close operations
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

//-------------------------------------------------------------------
// Datum definition file (TOML)
//-------------------------------------------------------------------

type defFile struct {
	Ellipsoids map[string]ellipsoidDef `toml:"ellipsoids"`
	Datums     map[string]datumDef     `toml:"datums"`
}

type ellipsoidDef struct {
	Name              string  `toml:"name"`
	SemiMajor         float64 `toml:"semi-major"`
	SemiMinor         float64 `toml:"semi-minor"`
	InverseFlattening float64 `toml:"inverse-flattening"`
}

type datumDef struct {
	Name      string     `toml:"name"`
	Aliases   []string   `toml:"aliases"`
	Ellipsoid string     `toml:"ellipsoid"`
	ToWGS84   []shiftDef `toml:"towgs84"`
}

type shiftDef struct {
	Values []float64 `toml:"values"` // 3, 6, 7 or 14 values (tx ty tz rx ry rz ds + rates)
	Epoch  float64   `toml:"epoch"`  // Reference epoch for 14 values, as a decimal year
	BBox   []float64 `toml:"bbox"`   // Domain of validity: west east south north [deg]
}

// loadDatums builds the datum table from a definition file. WGS 84 and
// ETRS89 are always present; all TOWGS84 parameter sets point to WGS 84.
func loadDatums(fn string) (map[string]*m.GeodeticDatum, error) {
	datums := map[string]*m.GeodeticDatum{
		"wgs84":  m.WGS84,
		"etrs89": m.ETRS89,
	}
	if fn == "" {
		return datums, nil
	}

	var def defFile
	if _, err := toml.DecodeFile(fn, &def); err != nil {
		return nil, err
	}

	ellipsoids := map[string]*m.Ellipsoid{
		"wgs84":    m.WGS84Ellipsoid,
		"grs80":    m.GRS80Ellipsoid,
		"intl1924": m.Intl1924Ellipsoid,
		"bessel":   m.Bessel1841,
	}
	for key, e := range def.Ellipsoids {
		el, err := buildEllipsoid(e)
		if err != nil {
			return nil, fmt.Errorf("ellipsoid %q: %w", key, err)
		}
		ellipsoids[strings.ToLower(key)] = el
	}

	for key, d := range def.Datums {
		el, ok := ellipsoids[strings.ToLower(d.Ellipsoid)]
		if !ok {
			return nil, fmt.Errorf("datum %q references unknown ellipsoid %q", key, d.Ellipsoid)
		}
		shifts, err := buildShifts(d.ToWGS84)
		if err != nil {
			return nil, fmt.Errorf("datum %q: %w", key, err)
		}
		dat, err := m.NewGeodeticDatum(m.DatumBase{Name: d.Name, Aliases: d.Aliases}, el, m.Greenwich, shifts...)
		if err != nil {
			return nil, err
		}
		datums[strings.ToLower(key)] = dat
	}
	return datums, nil
}

func buildEllipsoid(e ellipsoidDef) (*m.Ellipsoid, error) {
	if e.InverseFlattening != 0 {
		return m.NewFlattenedSphere(e.Name, e.SemiMajor, e.InverseFlattening, m.Metre)
	}
	return m.NewEllipsoid(e.Name, e.SemiMajor, e.SemiMinor, m.Metre)
}

func buildShifts(defs []shiftDef) ([]m.DatumShift, error) {
	var shifts []m.DatumShift
	for _, s := range defs {
		var domain *m.Extent
		if len(s.BBox) == 4 {
			domain = m.NewExtent(s.BBox[0], s.BBox[1], s.BBox[2], s.BBox[3])
		} else if len(s.BBox) != 0 {
			return nil, fmt.Errorf("bbox needs 4 values (west east south north), have %d", len(s.BBox))
		}
		switch len(s.Values) {
		case 3, 6, 7:
			p := m.NewBursaWolf(m.WGS84, domain)
			p.SetValues(s.Values...)
			shifts = append(shifts, p)
		case 14:
			if s.Epoch == 0 {
				return nil, fmt.Errorf("14-parameter set needs a reference epoch")
			}
			p := m.NewTimeDependent(m.WGS84, domain, m.Epoch(s.Epoch))
			p.SetValues(s.Values...)
			shifts = append(shifts, p)
		default:
			return nil, fmt.Errorf("parameter set needs 3, 6, 7 or 14 values, have %d", len(s.Values))
		}
	}
	return shifts, nil
}

//-------------------------------------------------------------------
// Command line arguments
//-------------------------------------------------------------------

// Structure to hold command line argument information
type cmdOpt struct {
	defFn string
	inFn  string
	outFn string
	from  string
	to    string
	epoch m.Epoch
	aoi   *m.Extent
}

// Parse command line arguments
func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options] -from tokyo -to wgs84 [input_file]

Reads "lat lon hei" lines (degrees, metres) from the input file or stdin
and writes the transformed positions to stdout (or the -o file).

[Options]
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.StringVar(&a.defFn, "def", "", "Datum definition file (TOML). wgs84 and etrs89 are built in.")
	flag.StringVar(&a.from, "from", "", "Source datum name (key in the definition file)")
	flag.StringVar(&a.to, "to", "wgs84", "Target datum name")
	flag.StringVar(&a.outFn, "o", "", "Output file path. If not specified, output to stdout.")
	flag.Var(&a.epoch, "t", "Coordinate epoch for time-dependent parameter sets, like -t 2010.0 or -t 2010-01-01")
	var aoiStr string
	flag.StringVar(&aoiStr, "aoi", "", "Area of interest for parameter set selection. Enclose in quotes like -aoi \"west east south north\" [deg]")
	var dbg int
	flag.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. 0(OFF), 1(display), 2(detailed display), 3(most detailed)")
	flag.Parse()
	m.DBG_ = dbg
	if a.from == "" {
		return a, fmt.Errorf("the source datum must be specified! (-from option)")
	}
	if aoiStr != "" {
		var w, e, s, n float64
		if _, err := fmt.Sscan(aoiStr, &w, &e, &s, &n); err != nil {
			return a, fmt.Errorf("invalid area of interest %q: %w", aoiStr, err)
		}
		a.aoi = m.NewExtent(w, e, s, n)
	}
	switch flag.NArg() {
	case 0:
	case 1:
		a.inFn = flag.Arg(0)
	default:
		return a, fmt.Errorf("too many arguments")
	}
	return
}
