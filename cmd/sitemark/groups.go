package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/sitemark"
)

// Run executes the groups add command.
func (c *GroupsAddCmd) Run(deps *Dependencies) error {
	pkg, err := packageName(deps, c.Package)
	if err != nil {
		return fail(deps, err)
	}

	group := &sitemark.Group{
		Name:    c.Name,
		Title:   c.Title,
		Package: pkg,
		Members: c.Members,
	}
	if err := deps.Groups.CreateGroup(deps.Ctx, group); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Added group %q (%s) to %s\n", group.Name, group.ID, pkg)
	return nil
}

// Run executes the groups list command.
func (c *GroupsListCmd) Run(deps *Dependencies) error {
	pkg, err := packageName(deps, c.Package)
	if err != nil {
		return fail(deps, err)
	}

	groups, err := deps.Groups.FindGroups(deps.Ctx, sitemark.GroupFilter{Package: &pkg})
	if err != nil {
		return fail(deps, err)
	}

	if len(groups) == 0 {
		fmt.Fprintln(deps.Stdout, "No groups found. Use 'sitemark groups add' to create one.")
		return nil
	}

	for _, g := range groups {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", g.ID, g.Name, strings.Join(g.Members, ","))
	}
	return nil
}

// Run executes the groups delete command.
func (c *GroupsDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Groups.DeleteGroup(deps.Ctx, c.ID); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted group %s\n", c.ID)
	return nil
}
