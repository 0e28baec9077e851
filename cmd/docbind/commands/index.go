package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/docbind/internal/docs"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	Profile  string `short:"p" help:"Show only this profile"`
	Function string `help:"Show the lookup candidates and resolution of one function"`
	Trimmed  string `help:"Trimmed name of --function (e.g. Uniform4 for Uniform4fv)"`
}

func (i *IndexCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	profiles, err := selectProfiles(cfg, i.Profile)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.stdout(), 0, 4, 2, ' ', 0)
	for _, p := range profiles {
		idx, err := docs.BuildIndex(p.Documentation.Primary, p.Documentation.Fallback)
		if err != nil {
			return err
		}

		if i.Function != "" {
			fn := docs.Function{Name: i.Function, TrimmedName: i.Trimmed}
			for _, candidate := range docs.Candidates(p.Documentation.FilePrefix, fn) {
				path, ok := idx.Lookup(candidate)
				if !ok {
					path = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, candidate, path)
			}
			continue
		}

		for _, name := range idx.Names() {
			path, _ := idx.Lookup(name)
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, name, path)
		}
	}
	return tw.Flush()
}
