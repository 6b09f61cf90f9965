package main

import (
	"errors"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/tinifycli"
	"github.com/sagarc03/tinifycli/credential"
	"github.com/sagarc03/tinifycli/output"
)

var errPromptCancelled = errors.New("no key entered")

func newSetCmd() *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set <KEY>",
		Short: "Save the Tinify API key",
		Long: `Save the Tinify API key to ~/.tinifycli/key so later runs can omit it.

Use --prompt to type the key into a masked prompt instead of passing it
as an argument. A key starting with "-" must follow "--":

  tinifycli set -- -abc123`,
		Args: func(cmd *cobra.Command, args []string) error {
			prompt, _ := cmd.Flags().GetBool("prompt")
			if len(args) == 0 && !prompt {
				return tinifycli.NewUsageError(errors.New("missing <KEY> argument"))
			}
			return nil
		},
		RunE: runSet,
	}

	setCmd.Flags().Bool("prompt", false, "read the key from a masked prompt")

	return setCmd
}

func runSet(cmd *cobra.Command, args []string) error {
	a, err := appFromContext(cmd.Context())
	if err != nil {
		return err
	}

	var raw string
	if prompt, _ := cmd.Flags().GetBool("prompt"); prompt && len(args) == 0 {
		raw, err = promptKey(a)
		if err != nil {
			return err
		}
	} else {
		raw = args[0]
	}

	key, err := credential.ValidateKey(raw)
	if err != nil {
		return tinifycli.NewUsageError(err)
	}

	store := credential.NewStore(credential.DefaultDir())
	if err := store.Save(key); err != nil {
		return err
	}

	output.NewFormatter(a.stderr, false).FormatSaved(store.Path(), key)
	return nil
}

// promptKey asks for the key on a masked prompt. Cancelling the prompt, or
// closing its input, is a usage error so nothing is saved and the exit status is 1.
func promptKey(a *app) (string, error) {
	prompt := promptui.Prompt{
		Label: "Tinify API key",
		Mask:  '*',
		Validate: func(input string) error {
			_, err := credential.ValidateKey(input)
			return err
		},
		Stdin:  io.NopCloser(a.stdin),
		Stdout: nopWriteCloser{a.stderr},
	}

	key, err := prompt.Run()
	if err != nil {
		return "", handlePromptError(a, err)
	}
	return key, nil
}

func handlePromptError(a *app, err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrEOF) {
		_, _ = io.WriteString(a.stderr, "Cancelled.\n")
		return tinifycli.NewUsageError(errPromptCancelled)
	}
	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
