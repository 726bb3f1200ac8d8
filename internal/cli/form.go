package cli

import (
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/shiftpay/internal/cli/formatter"
	"github.com/alexanderramin/shiftpay/internal/dialog"
	"github.com/alexanderramin/shiftpay/internal/domain"
)

// shiftpayHuhTheme returns a huh theme matching the formatter palette.
func shiftpayHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// profileFormValues holds the raw strings edited by the profile form.
type profileFormValues struct {
	Rate     string
	Bonus    string
	Credits  string
	Language string
}

func newProfileFormValues(p *domain.CompensationProfile) *profileFormValues {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	lang := string(p.Language)
	if lang == "" {
		lang = string(domain.LanguageEnglish)
	}
	return &profileFormValues{
		Rate:     format(p.HourlyRate),
		Bonus:    format(p.FixedBonus),
		Credits:  format(p.CreditPoints),
		Language: lang,
	}
}

// parse converts the form strings back into field values.
func (v *profileFormValues) parse() (map[domain.ProfileField]float64, domain.Language, error) {
	raw := map[domain.ProfileField]string{
		domain.FieldHourlyRate:   v.Rate,
		domain.FieldFixedBonus:   v.Bonus,
		domain.FieldCreditPoints: v.Credits,
	}
	out := make(map[domain.ProfileField]float64, len(raw))
	for field, s := range raw {
		amount, err := dialog.ParseAmount(s)
		if err != nil {
			return nil, "", err
		}
		out[field] = amount
	}
	lang, err := domain.ParseLanguage(v.Language)
	if err != nil {
		return nil, "", err
	}
	return out, lang, nil
}

func validateAmount(s string) error {
	_, err := dialog.ParseAmount(s)
	return err
}

// profileForm returns a themed form editing every profile field.
func profileForm(v *profileFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Hourly rate (₪)").Placeholder("45").Value(&v.Rate).Validate(validateAmount),
			huh.NewInput().Title("Transport bonus (₪)").Placeholder("300").Value(&v.Bonus).Validate(validateAmount),
			huh.NewInput().Title("Credit points").Placeholder("2.25").Value(&v.Credits).Validate(validateAmount),
			huh.NewSelect[string]().
				Title("Language").
				Options(
					huh.NewOption("English", string(domain.LanguageEnglish)),
					huh.NewOption("Русский", string(domain.LanguageRussian)),
				).
				Value(&v.Language),
		),
	).WithTheme(shiftpayHuhTheme()).WithShowHelp(false)
}
