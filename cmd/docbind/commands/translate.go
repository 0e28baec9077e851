package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docbind/internal/enumname"
)

// TranslateCmd implements the 'translate' command.
type TranslateCmd struct {
	Profile     string   `short:"p" help:"Use the enum settings of this profile (defaults to the first)"`
	Declaration bool     `short:"d" help:"Translate in declaration context (escape reserved words)"`
	Tokens      []string `arg:"" help:"Constant tokens such as GL_TEXTURE_2D"`
}

func (t *TranslateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	profile := cfg.Profiles[0]
	if t.Profile != "" {
		p, ok := cfg.Profile(t.Profile)
		if !ok {
			return errUnknownProfile(t.Profile)
		}
		profile = p
	}

	tr := enumname.New(profile.TranslatorOptions())
	for _, token := range t.Tokens {
		fmt.Fprintf(g.stdout(), "%s\t%s\n", token, tr.Translate(token, t.Declaration))
	}
	return nil
}
