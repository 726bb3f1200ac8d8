package formatter

import (
	"fmt"

	"github.com/alexanderramin/shiftpay/internal/dialog"
	"github.com/alexanderramin/shiftpay/internal/domain"
)

// Message identifies a user-facing string available in every language.
type Message string

const (
	MsgRatePrompt       = Message(dialog.PromptRate)
	MsgBonusPrompt      = Message(dialog.PromptBonus)
	MsgCreditsPrompt    = Message(dialog.PromptCredits)
	MsgSessionPrompt    = Message(dialog.PromptManualSession)
	MsgDayPrompt        = Message(dialog.PromptDay)
	MsgRangePrompt      = Message(dialog.PromptRange)
	MsgInvalidNumber    Message = "invalid_number"
	MsgInvalidFormat    Message = "invalid_format"
	MsgInvalidDate      Message = "invalid_date"
	MsgInvalidInterval  Message = "invalid_interval"
	MsgRateSet          Message = "rate_set"
	MsgBonusSet         Message = "bonus_set"
	MsgCreditsSet       Message = "credits_set"
	MsgLanguageSet      Message = "lang_set"
	MsgWorkStarted      Message = "work_started"
	MsgWorkStopped      Message = "work_stopped"
	MsgTodayWorked      Message = "today_worked"
	MsgAlreadyWorking   Message = "already_working"
	MsgNotWorking       Message = "not_working"
	MsgSessionSaved     Message = "session_saved"
	MsgExistingSessions Message = "existing_sessions"
	MsgMenu             Message = "menu"
	MsgReportTitle      Message = "report_title"
	MsgHours            Message = "hours"
	MsgGross            Message = "gross"
	MsgIncomeTax        Message = "income_tax"
	MsgCreditDiscount   Message = "credit_discount"
	MsgPension          Message = "pension"
	MsgInsurance        Message = "insurance"
	MsgNet              Message = "net"
)

var catalog = map[Message]map[domain.Language]string{
	MsgRatePrompt: {
		domain.LanguageEnglish: "Please enter your hourly rate (e.g. 45):",
		domain.LanguageRussian: "Введите вашу почасовую ставку (например, 45):",
	},
	MsgBonusPrompt: {
		domain.LanguageEnglish: "Please enter your transport bonus (e.g. 300):",
		domain.LanguageRussian: "Введите ваш транспортный бонус (например, 300):",
	},
	MsgCreditsPrompt: {
		domain.LanguageEnglish: "Please enter your credit points (e.g. 2.25):",
		domain.LanguageRussian: "Введите количество некудот зикуй (например, 2.25):",
	},
	MsgSessionPrompt: {
		domain.LanguageEnglish: "Send your session in format: 2025-05-24 09:00 - 17:00",
		domain.LanguageRussian: "Введите сессию: 2025-05-24 09:00 - 17:00",
	},
	MsgDayPrompt: {
		domain.LanguageEnglish: "Enter a date (YYYY-MM-DD) to view or add work:",
		domain.LanguageRussian: "Введите дату (ГГГГ-ММ-ДД), чтобы просмотреть или добавить работу:",
	},
	MsgRangePrompt: {
		domain.LanguageEnglish: "Now enter time range (HH:MM - HH:MM):",
		domain.LanguageRussian: "Введите диапазон времени (ЧЧ:ММ - ЧЧ:ММ):",
	},
	MsgInvalidNumber: {
		domain.LanguageEnglish: "Please enter a valid number.",
		domain.LanguageRussian: "Пожалуйста, введите корректное число.",
	},
	MsgInvalidFormat: {
		domain.LanguageEnglish: "Invalid format. Use: YYYY-MM-DD HH:MM - HH:MM",
		domain.LanguageRussian: "Неверный формат. Пример: 2025-05-24 09:00 - 17:00",
	},
	MsgInvalidDate: {
		domain.LanguageEnglish: "Invalid date. Use YYYY-MM-DD.",
		domain.LanguageRussian: "Неверная дата. Используйте ГГГГ-ММ-ДД.",
	},
	MsgInvalidInterval: {
		domain.LanguageEnglish: "The end time must be after the start time.",
		domain.LanguageRussian: "Время окончания должно быть позже начала.",
	},
	MsgRateSet: {
		domain.LanguageEnglish: "Hourly rate set to %s",
		domain.LanguageRussian: "Почасовая ставка установлена: %s",
	},
	MsgBonusSet: {
		domain.LanguageEnglish: "Transport bonus set to %s",
		domain.LanguageRussian: "Транспортный бонус установлен: %s",
	},
	MsgCreditsSet: {
		domain.LanguageEnglish: "Credit points set to %.2f",
		domain.LanguageRussian: "Некудот зикуй установлены: %.2f",
	},
	MsgLanguageSet: {
		domain.LanguageEnglish: "Language set to English.",
		domain.LanguageRussian: "Язык установлен: Русский.",
	},
	MsgWorkStarted: {
		domain.LanguageEnglish: "Work started at %s.",
		domain.LanguageRussian: "Работа началась в %s.",
	},
	MsgWorkStopped: {
		domain.LanguageEnglish: "Work stopped at %s.",
		domain.LanguageRussian: "Работа завершена в %s.",
	},
	MsgTodayWorked: {
		domain.LanguageEnglish: "You worked %.2f hours today.",
		domain.LanguageRussian: "Сегодня вы отработали %.2f часов.",
	},
	MsgAlreadyWorking: {
		domain.LanguageEnglish: "You are already working since %s.",
		domain.LanguageRussian: "Вы уже работаете с %s.",
	},
	MsgNotWorking: {
		domain.LanguageEnglish: "No work session is running.",
		domain.LanguageRussian: "Нет активной рабочей сессии.",
	},
	MsgSessionSaved: {
		domain.LanguageEnglish: "Session saved.",
		domain.LanguageRussian: "Сессия сохранена.",
	},
	MsgExistingSessions: {
		domain.LanguageEnglish: "Sessions for %s:",
		domain.LanguageRussian: "Сессии на %s:",
	},
	MsgMenu: {
		domain.LanguageEnglish: "Choose an action: rate, bonus, credits, start, stop, summary, fix, edit, language en|ru, quit",
		domain.LanguageRussian: "Выберите действие: rate, bonus, credits, start, stop, summary, fix, edit, language en|ru, quit",
	},
	MsgReportTitle: {
		domain.LanguageEnglish: "Report for %02d/%d",
		domain.LanguageRussian: "Отчет за %02d/%d",
	},
	MsgHours:          {domain.LanguageEnglish: "Hours", domain.LanguageRussian: "Часы"},
	MsgGross:          {domain.LanguageEnglish: "Gross", domain.LanguageRussian: "Брутто"},
	MsgIncomeTax:      {domain.LanguageEnglish: "Tax", domain.LanguageRussian: "Налог"},
	MsgCreditDiscount: {domain.LanguageEnglish: "Credit discount", domain.LanguageRussian: "Скидка по некудот"},
	MsgPension:        {domain.LanguageEnglish: "Pension", domain.LanguageRussian: "Пенсия"},
	MsgInsurance:      {domain.LanguageEnglish: "Insurance", domain.LanguageRussian: "Соц. взнос"},
	MsgNet:            {domain.LanguageEnglish: "Net", domain.LanguageRussian: "Нетто"},
}

// T returns the message in lang, formatted with args. Unknown languages fall
// back to English; unknown keys render as the key itself.
func T(lang domain.Language, key Message, args ...any) string {
	texts, ok := catalog[key]
	if !ok {
		return string(key)
	}
	text, ok := texts[lang]
	if !ok {
		text = texts[domain.LanguageEnglish]
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// PromptText localizes a dialog prompt.
func PromptText(lang domain.Language, p dialog.Prompt) string {
	return T(lang, Message(p))
}

// ParseErrorText localizes a rejected dialog input.
func ParseErrorText(lang domain.Language, kind dialog.ErrorKind) string {
	switch kind {
	case dialog.KindInvalidNumber:
		return T(lang, MsgInvalidNumber)
	case dialog.KindInvalidDate:
		return T(lang, MsgInvalidDate)
	case dialog.KindInvalidInterval:
		return T(lang, MsgInvalidInterval)
	}
	return T(lang, MsgInvalidFormat)
}
