package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.Equal(t, DarkTheme(), theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Border))
}

func TestThemes_AccentsAreDistinct(t *testing.T) {
	for name, theme := range map[string]*Theme{"dark": DarkTheme(), "light": LightTheme()} {
		t.Run(name, func(t *testing.T) {
			accents := []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error}

			seen := make(map[string]bool)
			for _, c := range accents {
				assert.False(t, seen[string(c)], "duplicate accent: %s", c)
				seen[string(c)] = true
			}
		})
	}
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, LightTheme(), ThemeFor(domain.ThemeLight))
	assert.Equal(t, DarkTheme(), ThemeFor(domain.ThemeDark))
	assert.NotNil(t, ThemeFor(domain.ThemeSystem))
	assert.NotNil(t, ThemeFor("sepia"))
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.Equal(t, DefaultTheme(), styles.Theme())
}

func TestNewStyles_KeepsTheme(t *testing.T) {
	theme := LightTheme()

	assert.Same(t, theme, NewStyles(theme).Theme())
}

func TestStyles_CanRenderText(t *testing.T) {
	styles := DefaultStyles()

	testCases := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Title", styles.Title},
		{"Subtitle", styles.Subtitle},
		{"Muted", styles.Muted},
		{"Selected", styles.Selected},
		{"Error", styles.Error},
		{"Card", styles.Card},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, tc.style.Render("test text"), "test text")
		})
	}
}

func TestStyles_Status(t *testing.T) {
	styles := DefaultStyles()

	assert.Equal(t, styles.Success, styles.Status(domain.StatusConsolidated))
	assert.Equal(t, styles.Warning, styles.Status(domain.StatusReview))
	assert.Equal(t, styles.Subtitle, styles.Status(domain.StatusNew))
}
