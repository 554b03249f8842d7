package cli

// Prompter abstracts the interactive prompts used when a profile argument is
// omitted, so tests can script responses.
type Prompter interface {
	Select(label string, items []string) (int, string, error)
	Confirm(label string, defaultYes bool) (bool, error)
}
