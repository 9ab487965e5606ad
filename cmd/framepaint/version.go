package main

import (
	"fmt"
	"slices"
	"sort"

	"github.com/example/framepaint/internal/theme"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	fmt.Printf("%s version %s\n", v.r.program, version)
	if commit != "" {
		fmt.Printf("commit %s %s\n", commit, date)
	}
	return nil
}

type themesCmd struct{ r *root }

func (t *themesCmd) Run() error {
	for _, n := range t.r.themeNames() {
		fmt.Println(n)
	}
	return nil
}

func (r *root) themeNames() []string {
	names := theme.Names()
	var extra []string
	for n := range r.config.Themes {
		if !slices.Contains(names, n) {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
