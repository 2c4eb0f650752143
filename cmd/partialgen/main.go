// Copyright the partial-application authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// partialgen expands partial.Gen call sites into closure literals, in place.
//
// Usage:
//
//	partialgen [flags] [package patterns]
//
// With no patterns it rewrites ./... relative to the working directory. A
// typical setup runs it through go:generate:
//
//	//go:generate partialgen .
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Emerentius/partial-application/expand"
	"github.com/Emerentius/partial-application/expand/config"
	"github.com/Emerentius/partial-application/internal/formatutil"
)

var (
	configPath = flag.String("config", "", "config file path (yaml)")
	dryRun     = flag.Bool("dry-run", false, "print rewritten files to stdout instead of writing them")
	prefix     = flag.String("prefix", "", "override the generated parameter name prefix")
	verbose    = flag.Bool("verbose", false, "debug-level logging")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		config.SetGlobalConfig(*configPath)
		var err error
		cfg, err = config.LoadGlobal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %s\n", formatutil.Red("error:"), err)
			os.Exit(1)
		}
	}
	if *dryRun {
		cfg.DryRun = true
	}
	if *prefix != "" {
		cfg.ParamPrefix = *prefix
	}
	if *verbose && cfg.LogLevel < int(config.DebugLevel) {
		cfg.LogLevel = int(config.DebugLevel)
	}

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	if err := run(cfg, patterns); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", formatutil.Red("error:"), err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, patterns []string) error {
	pkgs, err := expand.LoadPackages("", patterns...)
	if err != nil {
		return err
	}

	rewriter := expand.NewRewriter(cfg)
	changed, err := rewriter.RewritePackages(pkgs)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		rewriter.Log.Infof("no %s call sites found", cfg.Marker)
		return nil
	}
	if err := rewriter.WriteFiles(pkgs, changed, os.Stdout); err != nil {
		return err
	}

	sites := 0
	for _, n := range changed {
		sites += n
	}
	fmt.Printf("%s expanded %d call sites in %d files\n", formatutil.Green("partialgen:"), sites, len(changed))
	return nil
}
