// Package cli loads stories and player settings for the command line hosts.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/commonlog"

	"go.creack.net/gamebook/asm"
	"go.creack.net/gamebook/asm/symfile"
	"go.creack.net/gamebook/assets"
	"go.creack.net/gamebook/disasm"
	"go.creack.net/gamebook/project"
	"go.creack.net/gamebook/vm"
)

// BundledPrefix selects a story shipped in assets, as in "@cellar".
const BundledPrefix = "@"

// DefaultStory is played when neither an argument nor a project names one.
const DefaultStory = BundledPrefix + "cellar"

var logger = commonlog.GetLogger("gamebook.cli")

// Story is a loaded image with whatever symbols could be found for it.
type Story struct {
	PathName  string
	ShortName string
	Data      []byte
	Source    string // Empty for images.

	Prog    *asm.Program // Set when compiled from source.
	Symbols *symfile.Map // Nil when unknown.
}

// LoadStory compiles a .src file, reads a .gbk image or loads a bundled
// story.
func LoadStory(pathName string, opts asm.Options) (*Story, error) {
	s := &Story{PathName: pathName}

	if name, ok := strings.CutPrefix(pathName, BundledPrefix); ok {
		src, err := assets.Story(name)
		if err != nil {
			return nil, err
		}
		s.ShortName = name
		return s, s.compile(src, opts)
	}

	s.ShortName = strings.TrimSuffix(filepath.Base(pathName), filepath.Ext(pathName))
	data, err := os.ReadFile(pathName)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", pathName, err)
	}

	switch filepath.Ext(pathName) {
	case assets.Ext:
		return s, s.compile(string(data), opts)
	case project.ImageExt:
		s.Data = data
		return s, s.loadSymbols()
	default:
		return nil, fmt.Errorf("invalid file extension for %q, must be %s or %s", pathName, assets.Ext, project.ImageExt)
	}
}

func (s *Story) compile(src string, opts asm.Options) error {
	buf, pr, err := asm.Compile(s.PathName, src, opts)
	if err != nil {
		return fmt.Errorf("failed to compile %q: %w", s.PathName, err)
	}
	for _, w := range pr.Warnings() {
		logger.Warningf("%s", w)
	}
	s.Data, s.Source, s.Prog, s.Symbols = buf, src, pr, symfile.FromProgram(pr)
	return nil
}

// loadSymbols reads the sidecar symbol map, falling back to the bundled
// story matching the image.
func (s *Story) loadSymbols() error {
	side := strings.TrimSuffix(s.PathName, filepath.Ext(s.PathName)) + symfile.Ext
	m, err := symfile.ReadFile(side)
	if err == nil {
		s.Symbols = m
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load symbols: %w", err)
	}
	m, err = disasm.KnownSymbols(s.Data)
	if err != nil {
		return err
	}
	if m != nil {
		logger.Infof("%s matches a bundled story", s.PathName)
	}
	s.Symbols = m
	return nil
}

// Options are the settings shared by every player.
type Options struct {
	Story     string
	Seed      uint64
	Limit     int
	Trace     bool
	Strict    bool
	Verbosity int
}

type countFlag int

func (c *countFlag) String() string { return fmt.Sprint(int(*c)) }

func (c *countFlag) Set(string) error {
	*c++
	return nil
}

func (*countFlag) IsBoolFlag() bool { return true }

// VerbosityFlag registers a repeatable -v flag.
func VerbosityFlag(flags *flag.FlagSet, v *int) {
	flags.Var((*countFlag)(v), "v", "increase verbosity (repeatable)")
}

// ParseConfig parses the player flags, then fills what they leave unset
// from the nearest gamebook.toml.
func ParseConfig(name string, args []string) (vm.Config, *Story, error) {
	var opts Options
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.Uint64Var(&opts.Seed, "seed", 0, "random seed, 0 for the clock")
	flags.IntVar(&opts.Limit, "limit", 0, "bytes of output kept, 0 for unlimited")
	flags.BoolVar(&opts.Trace, "trace", false, "trace every instruction")
	flags.BoolVar(&opts.Strict, "strict", false, "fail on unresolved symbols")
	VerbosityFlag(flags, &opts.Verbosity)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %s [flags] [story.src|story.gbk|@bundled]\n", name)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return vm.Config{}, nil, err
	}
	if flags.NArg() > 1 {
		return vm.Config{}, nil, fmt.Errorf("at most one story, got %d", flags.NArg())
	}
	opts.Story = flags.Arg(0)
	commonlog.Configure(opts.Verbosity, nil)

	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if err := applyProject(&opts, set); err != nil {
		return vm.Config{}, nil, err
	}

	s, err := LoadStory(opts.Story, asm.Options{Strict: opts.Strict})
	if err != nil {
		return vm.Config{}, nil, err
	}
	return NewConfig(opts), s, nil
}

// applyProject fills the options not given on the command line.
func applyProject(opts *Options, set map[string]bool) error {
	p, err := project.FindAndLoad(".")
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	if p == nil {
		if opts.Story == "" {
			opts.Story = DefaultStory
		}
		return nil
	}
	logger.Infof("using project %s", p.Dir)
	if opts.Story == "" {
		opts.Story = p.SourcePath()
		if _, err := os.Stat(opts.Story); err != nil {
			opts.Story = p.OutputPath()
		}
	}
	if !set["seed"] {
		opts.Seed = p.Play.Seed
	}
	if !set["limit"] {
		opts.Limit = p.Play.OutputLimit
	}
	if !set["trace"] {
		opts.Trace = p.Play.Trace
	}
	if !set["strict"] {
		opts.Strict = p.Build.Strict
	}
	return nil
}

// NewConfig builds the VM settings. A zero seed uses the clock.
func NewConfig(opts Options) vm.Config {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return vm.Config{
		Rand:        rand.New(rand.NewPCG(seed, seed>>1)),
		OutputLimit: opts.Limit,
		Trace:       opts.Trace,
	}
}
