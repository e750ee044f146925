package main

import (
	"fmt"
	"sort"
)

// Run executes the ids set command.
func (c *IDsSetCmd) Run(deps *Dependencies) error {
	pkg, err := packageName(deps, c.Package)
	if err != nil {
		return fail(deps, err)
	}

	if err := deps.IDs.SetID(deps.Ctx, pkg, c.Anchor, c.URL); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "%s -> %s\n", c.Anchor, c.URL)
	return nil
}

// Run executes the ids list command.
func (c *IDsListCmd) Run(deps *Dependencies) error {
	pkg, err := packageName(deps, c.Package)
	if err != nil {
		return fail(deps, err)
	}

	ids, err := deps.IDs.FindIDs(deps.Ctx, pkg)
	if err != nil {
		return fail(deps, err)
	}

	if len(ids) == 0 {
		fmt.Fprintln(deps.Stdout, "No ids found. Use 'sitemark ids set' to register one.")
		return nil
	}

	anchors := make([]string, 0, len(ids))
	for a := range ids {
		anchors = append(anchors, a)
	}
	sort.Strings(anchors)
	for _, a := range anchors {
		fmt.Fprintf(deps.Stdout, "%s -> %s\n", a, ids[a])
	}
	return nil
}

// Run executes the ids delete command.
func (c *IDsDeleteCmd) Run(deps *Dependencies) error {
	pkg, err := packageName(deps, c.Package)
	if err != nil {
		return fail(deps, err)
	}

	if err := deps.IDs.DeleteID(deps.Ctx, pkg, c.Anchor); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted id %s\n", c.Anchor)
	return nil
}
