// Command burl evaluates a kernel script and writes the solids it emits
// as STL.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/burl/pkg/export"
	"github.com/chazu/burl/pkg/mesh"
	"github.com/chazu/burl/pkg/script"
	"github.com/chazu/burl/pkg/topo"
)

func main() {
	outDir := flag.String("o", ".", "output directory for STL files")
	ascii := flag.Bool("ascii", false, "write ASCII STL instead of binary")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-o dir] [-ascii] script.lisp\n", os.Args[0])
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read script: %v", err)
	}

	solids, evalErrs, err := script.NewEngine().Evaluate(string(source))
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", flag.Arg(0), e.Error())
		}
		os.Exit(1)
	}
	if len(solids) == 0 {
		log.Fatalf("script emitted no solids (did you call emit?)")
	}

	for _, ns := range solids {
		if !topo.IsValid(ns.Solid) {
			log.Printf("warning: solid %q fails topology validation", ns.Name)
		}
		if err := writeSolid(*outDir, ns, *ascii); err != nil {
			log.Fatalf("write %q: %v", ns.Name, err)
		}
	}
}

func writeSolid(dir string, ns script.NamedSolid, ascii bool) error {
	m := mesh.FromSolid(ns.Solid)
	name := strings.ReplaceAll(ns.Name, string(filepath.Separator), "_")
	path := filepath.Join(dir, name+".stl")

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if ascii {
		err = export.WriteSTLText(f, m, ns.Name)
	} else {
		err = export.WriteSTL(f, m, ns.Name)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	log.Printf("wrote %s (%d triangles)", path, m.TriangleCount())
	return nil
}
