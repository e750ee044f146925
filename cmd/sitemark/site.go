package main

import (
	"fmt"

	"github.com/fwojciec/sitemark"
	smprom "github.com/fwojciec/sitemark/prometheus"
	"github.com/fwojciec/sitemark/yaml"
)

// loadPackage reads the package manifest and merges the registries over
// the manifest's ids and groups. Registry entries win.
func loadPackage(deps *Dependencies) (*sitemark.Package, error) {
	pkg, err := yaml.LoadPackage(deps.Fs, deps.Root)
	if err != nil {
		return nil, err
	}

	if deps.IDs != nil {
		ids, err := deps.IDs.FindIDs(deps.Ctx, pkg.Name)
		if err != nil {
			return nil, fmt.Errorf("loading global ids: %w", err)
		}
		if len(ids) > 0 {
			merged := make(sitemark.GlobalIDs, len(pkg.IDs)+len(ids))
			for k, v := range pkg.IDs {
				merged[k] = v
			}
			for k, v := range ids {
				merged[k] = v
			}
			pkg.IDs = merged
		}
	}

	if deps.Groups != nil {
		groups, err := deps.Groups.FindGroups(deps.Ctx, sitemark.GroupFilter{Package: &pkg.Name})
		if err != nil {
			return nil, fmt.Errorf("loading groups: %w", err)
		}
		// NewGroups lets later entries win.
		pkg.Groups = append(pkg.Groups, groups...)
	}
	return pkg, nil
}

// loadSite loads the package and its site, wrapped for metrics.
func loadSite(deps *Dependencies) (*smprom.InstrumentedSite, error) {
	pkg, err := loadPackage(deps)
	if err != nil {
		return nil, err
	}
	site, err := deps.Loader.Load(deps.Ctx, pkg)
	if err != nil {
		return nil, err
	}
	return smprom.NewInstrumentedSite(site, deps.Metrics), nil
}

// packageName returns name, or the manifest's package name when empty.
func packageName(deps *Dependencies, name string) (string, error) {
	if name != "" {
		return name, nil
	}
	pkg, err := yaml.LoadPackage(deps.Fs, deps.Root)
	if err != nil {
		return "", err
	}
	return pkg.Name, nil
}

// fail reports err on stderr the way every command does and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", sitemark.ErrorMessage(err))
	if row := sitemark.ErrorRow(err); row != "" {
		fmt.Fprintf(deps.Stderr, "  at: %s\n", row)
	}
	return err
}
