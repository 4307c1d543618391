// Command validate lints authored game content without starting the server.
// It checks area requirement objects, cross-references between areas,
// species, and abilities, and reports authoring diagnostics. Exits non-zero
// if any issue is found.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cory-johannsen/menagerie/internal/game/ability"
	"github.com/cory-johannsen/menagerie/internal/game/area"
	"github.com/cory-johannsen/menagerie/internal/game/shop"
	"github.com/cory-johannsen/menagerie/internal/game/species"
	"github.com/cory-johannsen/menagerie/internal/game/unlock"
)

func main() {
	var (
		areasDir     = flag.String("areas", "content/areas", "area content directory")
		speciesDir   = flag.String("species", "content/species", "species content directory")
		shopsDir     = flag.String("shops", "content/shops", "shop content directory")
		abilitiesDir = flag.String("abilities", "content/abilities", "ability content directory")
		maxDepth     = flag.Int("max-depth", 4, "warn when a requirement tree nests deeper than this")
	)
	flag.Parse()

	issues := lint(*areasDir, *speciesDir, *shopsDir, *abilitiesDir, *maxDepth)
	if len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintln(os.Stderr, issue)
		}
		fmt.Fprintf(os.Stderr, "%d issue(s) found\n", len(issues))
		os.Exit(1)
	}
	fmt.Println("content ok")
}

func lint(areasDir, speciesDir, shopsDir, abilitiesDir string, maxDepth int) []string {
	var issues []string

	areaDefs, err := area.LoadDirectory(areasDir)
	if err != nil {
		return []string{fmt.Sprintf("loading areas: %v", err)}
	}
	areas, err := area.NewRegistry(areaDefs)
	if err != nil {
		return []string{fmt.Sprintf("building area registry: %v", err)}
	}

	speciesReg, err := species.LoadDirectory(speciesDir)
	if err != nil {
		return []string{fmt.Sprintf("loading species: %v", err)}
	}
	abilities, err := ability.LoadDirectory(abilitiesDir)
	if err != nil {
		return []string{fmt.Sprintf("loading abilities: %v", err)}
	}
	shops, err := shop.LoadDirectory(shopsDir)
	if err != nil {
		return []string{fmt.Sprintf("loading shops: %v", err)}
	}

	if err := areas.ValidateConnections(); err != nil {
		issues = append(issues, err.Error())
	}
	if err := speciesReg.ValidateAbilityRefs(abilities.Has); err != nil {
		issues = append(issues, err.Error())
	}

	for _, def := range areas.All() {
		report := unlock.ValidateRequirements(def.ID, def.RawRequirements)
		issues = append(issues, report.Issues...)

		complexity := unlock.Complexity(def.Requirements)
		if complexity.Depth > maxDepth {
			issues = append(issues, fmt.Sprintf(
				"%s: requirement tree nests %d deep (max %d)", def.ID, complexity.Depth, maxDepth))
		}

		for _, entry := range def.SpawnTable {
			if _, ok := speciesReg.Get(entry.Species); !ok {
				issues = append(issues, fmt.Sprintf(
					"%s: spawn table references unknown species %q", def.ID, entry.Species))
			}
		}
		if def.Boss != nil && def.Boss.Species != "" {
			if _, ok := speciesReg.Get(def.Boss.Species); !ok {
				issues = append(issues, fmt.Sprintf(
					"%s: boss references unknown species %q", def.ID, def.Boss.Species))
			}
		}

		// One-way connections are legal (one-way drops exist) but usually
		// an authoring mistake, so surface them.
		for _, conn := range def.Connections {
			target, ok := areas.Get(conn)
			if !ok {
				continue // already reported by ValidateConnections
			}
			if !contains(target.Connections, def.ID) {
				issues = append(issues, fmt.Sprintf(
					"%s: connection to %q is one-way", def.ID, conn))
			}
		}
	}

	for _, def := range shops.All() {
		if _, ok := areas.Get(def.AreaID); !ok {
			issues = append(issues, fmt.Sprintf(
				"shop %q: references unknown area %q", def.ID, def.AreaID))
		}
	}

	return issues
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
