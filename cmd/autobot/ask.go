package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhuss/autobot/pkg/relay"
)

func newAskCmd(flags *rootFlags) *cobra.Command {
	var insert bool
	cmd := &cobra.Command{
		Use:   "ask PROMPT|-",
		Short: "Send a prompt to the text-generation service",
		Long: "Ask relays PROMPT and prints the answer. Prompts containing code\n" +
			"fences are rejected. With --insert the answer is printed without\n" +
			"fences so it can be saved as source.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if prompt == "-" {
				var err error
				if prompt, err = readSource("-", cmd.InOrStdin()); err != nil {
					return err
				}
			}

			r, cleanup, err := buildRelay(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			text, err := r.Generate(cmd.Context(), prompt)
			if err != nil {
				return err
			}
			if insert {
				text = r.Insert(text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&insert, "insert", false, "strip code fences from the answer")
	return cmd
}

func newExplainCmd(flags *rootFlags) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "explain FILE",
		Short: "Ask for the expected output and an explanation of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, err := languageFor(lang, args[0])
			if err != nil {
				return err
			}
			source, err := readSource(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			r, cleanup, err := buildRelay(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			text, err := r.Explain(cmd.Context(), language, source)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "source language (python or java); inferred from the file extension when empty")
	return cmd
}

func buildRelay(flags *rootFlags) (*relay.Relay, func(), error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}
	return newRelay(gen, cfg), func() { _ = gen.Close() }, nil
}
