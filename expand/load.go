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

package expand

import (
	"fmt"

	"github.com/dave/dst/decorator"
	"golang.org/x/tools/go/packages"
)

// PkgLoadMode is the load mode rewriting needs: full syntax plus type
// information, so marker call sites and callable signatures resolve.
const PkgLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes |
	packages.NeedModule

// LoadPackages loads, parses and type-checks the packages matching args,
// with comment-preserving syntax trees. A package that fails to load or
// type-check is an error: rewriting a half-understood file would corrupt it.
func LoadPackages(dir string, args ...string) ([]*decorator.Package, error) {
	conf := &packages.Config{
		Mode:  PkgLoadMode,
		Dir:   dir,
		Tests: false,
	}
	pkgs, err := decorator.Load(conf, args...)
	if err != nil {
		return nil, fmt.Errorf("could not load packages %v: %w", args, err)
	}
	for _, pack := range pkgs {
		for _, e := range pack.Errors {
			return nil, fmt.Errorf("package %s: %s", pack.PkgPath, e)
		}
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", args)
	}
	return pkgs, nil
}
