package picker

import (
	"testing"

	catppuccin "github.com/catppuccin/go"
)

func TestStyles_AllFlavors(t *testing.T) {
	flavors := []string{"latte", "frappe", "macchiato", "mocha"}

	for _, flavor := range flavors {
		t.Run(flavor, func(t *testing.T) {
			styles := NewStyles(flavor)

			if !styles.TitleStyle().GetBold() {
				t.Error("TitleStyle should be bold")
			}
			if !styles.SelectedStyle().GetBold() {
				t.Error("SelectedStyle should be bold")
			}
			if styles.RowStyle().GetBold() {
				t.Error("RowStyle should not be bold")
			}
			if styles.PreviewStyle().Render("x") == "" {
				t.Error("PreviewStyle should render content")
			}
		})
	}
}

func TestStyles_UnknownThemeFallsBackToMocha(t *testing.T) {
	styles := NewStyles("solarized")
	if styles.flavor.Base().Hex != catppuccin.Mocha.Base().Hex {
		t.Errorf("base = %q, want mocha base %q", styles.flavor.Base().Hex, catppuccin.Mocha.Base().Hex)
	}
}
