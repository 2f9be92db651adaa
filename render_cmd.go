package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Drolfothesgnir/stackmark/backend"
	"github.com/Drolfothesgnir/stackmark/render"
	"github.com/Drolfothesgnir/stackmark/util"
	"github.com/rs/zerolog/log"
)

type RenderCmd struct {
	Format     string `short:"f" default:"html" enum:"html,json,markdown" help:"Output format (${enum})."`
	Backend    string `short:"b" help:"Parser backend: stack or commonmark. Defaults to DEFAULT_BACKEND."`
	Emoji      bool   `short:"e" help:"Replace emoticons with emoji. Defaults to EMOJI_ENABLED."`
	HardBreaks bool   `help:"Render line breaks as <br>."`
	File       string `arg:"" optional:"" type:"existingfile" help:"Markdown file. Reads stdin when omitted."`
}

func (cmd *RenderCmd) Run(config util.Config) error {
	in := io.Reader(os.Stdin)
	if cmd.File != "" {
		f, err := os.Open(cmd.File)
		if err != nil {
			return fmt.Errorf("cannot open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	return cmd.execute(config, in, os.Stdout)
}

func (cmd *RenderCmd) execute(config util.Config, in io.Reader, out io.Writer) error {
	input, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}

	backendName := cmd.Backend
	if backendName == "" {
		backendName = config.DefaultBackend
	}

	root, warnings, err := backend.ParseWithWarnings(backendName, string(input))
	if err != nil {
		return err
	}

	for _, w := range warnings {
		log.Warn().
			Str("issue", w.Issue.String()).
			Int("pos", w.Pos).
			Msg(w.Description)
	}

	opts := render.Options{
		Emoji:      cmd.Emoji || config.EmojiEnabled,
		HardBreaks: cmd.HardBreaks,
	}

	result, err := render.Output(root, cmd.Format, opts)
	if err != nil {
		return err
	}

	log.Debug().
		Str("backend", backendName).
		Str("format", cmd.Format).
		Int("input_bytes", len(input)).
		Msg("markdown rendered")

	if result.Tree != nil {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Tree)
	}

	_, err = fmt.Fprintln(out, result.Text)
	return err
}
