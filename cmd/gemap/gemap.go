/*
gemap is a console utility analyzing a BNF grammar and mapping genomes to phenotypes.
Usage is

	gemap [-c <file>] [-d <depth>] [-w <wraps>] [-s <size>] [-n <count>] [-l <length>] [-seed <n>] [-strict] [-j] [-p] [-v] <grammar> [<codon> ...]

-c <file> loads YAML run configuration (codon_size, max_depth, max_wraps, window,
strict, workers, genomes, genome_length, seed), flags override file values;

-j outputs grammar analysis as JSON instead of mapping genomes;

-p outputs numbers of derivation trees per depth;

<grammar> is BNF grammar file, files with .pybnf suffix use block dialect;

<codon> ... is a genome to map; if omitted, random genomes are generated and mapped.
*/
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"

	"github.com/ava12/gevo/bnf"
	"github.com/ava12/gevo/grammar"
	"github.com/ava12/gevo/mapper"
	"github.com/ava12/gevo/source"
)

const usage = "Usage is  gemap [-c <file>] [-d <depth>] [-w <wraps>] [-s <size>] [-n <count>] [-l <length>] [-seed <n>] [-strict] [-j] [-p] [-v] <grammar> [<codon> ...]"

func main() {
	e := run(os.Args[1:], os.Stdout, os.Stderr)
	if e == flag.ErrHelp {
		os.Exit(2)
	}
	if e != nil {
		fmt.Println(e.Error())
		os.Exit(3)
	}
}

type options struct {
	configName string
	asJson     bool
	showPerms  bool
	verbose    bool
	cfg        runConfig
	grammar    string
	codons     []int
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{cfg: defaultRunConfig()}
	fs := flag.NewFlagSet("gemap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), usage)
		fs.PrintDefaults()
	}

	var flagCfg runConfig
	fs.StringVar(&opts.configName, "c", "", "YAML run configuration file")
	fs.BoolVar(&opts.asJson, "j", false, "output grammar analysis as JSON")
	fs.BoolVar(&opts.showPerms, "p", false, "output numbers of derivation trees per depth")
	fs.BoolVar(&opts.verbose, "v", false, "log diagnostics to stderr")
	fs.IntVar(&flagCfg.MaxDepth, "d", opts.cfg.MaxDepth, "maximum derivation tree depth")
	fs.IntVar(&flagCfg.MaxWraps, "w", opts.cfg.MaxWraps, "maximum number of genome wraps")
	fs.IntVar(&flagCfg.CodonSize, "s", opts.cfg.CodonSize, "codon size for random genomes")
	fs.IntVar(&flagCfg.Genomes, "n", opts.cfg.Genomes, "number of random genomes")
	fs.IntVar(&flagCfg.GenomeLength, "l", opts.cfg.GenomeLength, "random genome length")
	fs.Int64Var(&flagCfg.Seed, "seed", opts.cfg.Seed, "random seed")
	fs.BoolVar(&flagCfg.Strict, "strict", false, "fail on non-terminals that never expand to terminals")
	if e := fs.Parse(args); e != nil {
		return nil, e
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return nil, flag.ErrHelp
	}
	opts.grammar = fs.Arg(0)
	for _, arg := range fs.Args()[1:] {
		c, e := strconv.Atoi(arg)
		if e != nil || c < 0 {
			return nil, fmt.Errorf("invalid codon: %s", arg)
		}
		opts.codons = append(opts.codons, c)
	}

	if opts.configName != "" {
		cfg, e := loadRunConfig(opts.configName)
		if e != nil {
			return nil, e
		}
		opts.cfg = cfg
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			opts.cfg.MaxDepth = flagCfg.MaxDepth
		case "w":
			opts.cfg.MaxWraps = flagCfg.MaxWraps
		case "s":
			opts.cfg.CodonSize = flagCfg.CodonSize
		case "n":
			opts.cfg.Genomes = flagCfg.Genomes
		case "l":
			opts.cfg.GenomeLength = flagCfg.GenomeLength
		case "seed":
			opts.cfg.Seed = flagCfg.Seed
		case "strict":
			opts.cfg.Strict = flagCfg.Strict
		}
	})
	return opts, opts.cfg.validate()
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, e := parseArgs(args, stderr)
	if e != nil {
		return e
	}

	logger := log.New(io.Discard, "gemap: ", 0)
	if opts.verbose {
		logger.SetOutput(stderr)
	}

	src, e := os.ReadFile(opts.grammar)
	if e != nil {
		return e
	}

	g, e := bnf.ParseOptions(source.New(opts.grammar, src), bnf.Options{
		Strict: opts.cfg.Strict,
		Window: opts.cfg.Window,
	})
	if e != nil {
		return e
	}
	logger.Printf("%s: %d non-terminals, min path %d, max arity %d", g.Name, len(g.Nonterms), g.MinPath, g.MaxArity)
	if names := g.Unresolved(); len(names) > 0 {
		logger.Printf("unresolved non-terminals: %v", names)
	}

	if opts.asJson {
		return writeJson(stdout, g, opts.cfg.Window)
	}
	if opts.showPerms {
		return writePermutations(stdout, g, opts.cfg.Window)
	}

	m := mapper.New(g, opts.cfg.mapperConfig())
	if len(opts.codons) > 0 {
		writeResult(stdout, m.Map(opts.codons))
		return nil
	}

	r := rand.New(rand.NewSource(opts.cfg.Seed))
	genomes := make([][]int, opts.cfg.Genomes)
	for i := range genomes {
		genomes[i] = m.Config().RandomGenome(r, opts.cfg.GenomeLength)
	}
	results, e := m.MapPopulation(context.Background(), genomes, opts.cfg.Workers)
	if e != nil {
		return e
	}

	invalid := 0
	for _, res := range results {
		if res.Invalid {
			invalid++
			continue
		}
		writeResult(stdout, res)
	}
	logger.Printf("mapped %d genomes, %d invalid", len(results), invalid)
	return nil
}

func writeResult(w io.Writer, res mapper.Result) {
	status := "ok"
	if res.Invalid {
		status = "invalid"
	}
	fmt.Fprintf(w, "%s\tused=%d nodes=%d depth=%d wraps=%d\t%q\n", status, res.Used, res.Nodes, res.Depth, res.Wraps, res.Phenotype)
}

func writePermutations(w io.Writer, g *grammar.Grammar, window int) error {
	counts, e := g.CountWindow(window)
	if e != nil {
		return e
	}

	for i, n := range counts {
		fmt.Fprintf(w, "%d\t%s\n", g.MinPath+i, n)
	}
	return nil
}

type ntJson struct {
	Name        string
	MinSteps    int `json:",omitempty"`
	Expanded    bool
	Recursive   bool
	BFactor     int
	Productions []string
}

type grammarJson struct {
	Name         string
	MinPath      int
	MaxArity     int
	Nonterms     []ntJson
	Crossover    []string `json:",omitempty"`
	Unresolved   []string `json:",omitempty"`
	Permutations map[int]string
}

func writeJson(w io.Writer, g *grammar.Grammar, window int) error {
	counts, e := g.CountWindow(window)
	if e != nil {
		return e
	}

	gj := grammarJson{
		Name:         g.Name,
		MinPath:      g.MinPath,
		MaxArity:     g.MaxArity,
		Crossover:    g.CrossoverNonterms(),
		Unresolved:   g.Unresolved(),
		Permutations: make(map[int]string, len(counts)),
	}
	for i, n := range counts {
		gj.Permutations[g.MinPath+i] = n.String()
	}

	for _, nt := range g.Nonterms {
		nj := ntJson{Name: nt.Name, Expanded: nt.Expanded, Recursive: nt.Recursive, BFactor: nt.BFactor}
		if nt.Expanded {
			nj.MinSteps = nt.MinSteps
		}
		for _, p := range nt.Productions {
			text := ""
			for _, s := range p.Symbols {
				text += s.Text
			}
			nj.Productions = append(nj.Productions, text)
		}
		gj.Nonterms = append(gj.Nonterms, nj)
	}

	content, e := json.MarshalIndent(gj, "", "  ")
	if e != nil {
		return e
	}

	_, e = fmt.Fprintln(w, string(content))
	return e
}
