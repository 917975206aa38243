package selection

import "fmt"

// DefaultLabel implements the stock label rules. allSelected is checked
// before the count, so a single selected option out of one yields allLabel.
func DefaultLabel[T comparable](prompt, allLabel string) LabelFunc[T] {
	return func(selected []Option[T], allSelected bool) string {
		switch {
		case allSelected:
			return allLabel
		case len(selected) == 1:
			return selected[0].Text
		case len(selected) > 1:
			return fmt.Sprintf("%d Selected", len(selected))
		}
		return prompt
	}
}
