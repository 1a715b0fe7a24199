package picker

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/gerunddev/revpick/format"
)

// HuhSelector presents items as a plain huh select, with no preview pane.
// Used by --plain mode and by terminals where the full picker is unwanted.
type HuhSelector struct{}

func (HuhSelector) Pick(title string, items []format.Item) (string, error) {
	options := make([]huh.Option[string], len(items))
	for i, it := range items {
		options[i] = huh.NewOption(it.Text, it.CommitID)
	}

	var choice string
	err := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&choice).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", err
	}
	return choice, nil
}
