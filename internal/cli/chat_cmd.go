package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shiftpay/internal/cli/formatter"
	"github.com/alexanderramin/shiftpay/internal/dialog"
	"github.com/alexanderramin/shiftpay/internal/domain"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Line-based conversation mode",
		Long: `Reads one message per line from stdin and replies like the chat bot:
"rate", "bonus" and "credits" ask for a value, "fix" records a session,
"edit" adds a range to a past day, "start"/"stop" track live work,
"summary" prints this month's report and "quit" ends the conversation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := &chatSession{
				app:     app,
				machine: dialog.NewMachine(),
				lang:    app.language(ctx),
				out:     cmd.OutOrStdout(),
			}
			return c.run(ctx, cmd.InOrStdin())
		},
	}
}

// promptActions maps chat keywords onto dialog actions.
var promptActions = map[string]dialog.Action{
	"rate":    dialog.ActionSetRate,
	"bonus":   dialog.ActionSetBonus,
	"credits": dialog.ActionSetCredits,
	"fix":     dialog.ActionFixSession,
	"edit":    dialog.ActionEditDay,
}

// chatSession drives one dialog.Machine from text lines.
type chatSession struct {
	app     *App
	machine *dialog.Machine
	lang    domain.Language
	out     io.Writer
}

func (c *chatSession) run(ctx context.Context, in io.Reader) error {
	c.say(formatter.T(c.lang, formatter.MsgMenu))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !c.handle(ctx, line) {
			return nil
		}
	}
	return scanner.Err()
}

func (c *chatSession) say(text string) {
	fmt.Fprintln(c.out, strings.TrimRight(text, "\n"))
}

// handle processes one line and reports whether the conversation goes on.
// Keywords are honoured in any state and abandon pending input.
func (c *chatSession) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	keyword := fields[0]

	if action, ok := promptActions[keyword]; ok && len(fields) == 1 {
		prompt, err := c.machine.Begin(action)
		if err != nil {
			c.fail(err)
			return true
		}
		c.say(formatter.PromptText(c.lang, prompt))
		return true
	}

	switch keyword {
	case "quit", "exit":
		return false
	case "menu", "help", "cancel":
		c.machine.Reset()
		c.say(formatter.T(c.lang, formatter.MsgMenu))
		return true
	case "start", "stop", "summary":
		if len(fields) == 1 {
			c.machine.Reset()
			c.command(ctx, keyword)
			return true
		}
	case "language", "lang":
		if len(fields) == 2 {
			c.machine.Reset()
			c.setLanguage(ctx, fields[1])
			return true
		}
	}

	if c.machine.State() == dialog.Idle {
		c.say(formatter.T(c.lang, formatter.MsgMenu))
		return true
	}
	c.submit(ctx, line)
	return true
}

func (c *chatSession) command(ctx context.Context, keyword string) {
	app := c.app
	now := app.now()

	switch keyword {
	case "start":
		ws, err := app.Ledger.StartWork(ctx, app.UserID, now)
		if errors.Is(err, domain.ErrSessionAlreadyOpen) {
			if open, openErr := app.Ledger.OpenSession(ctx, app.UserID); openErr == nil {
				c.say(formatter.T(c.lang, formatter.MsgAlreadyWorking, open.StartedAt.Format(domain.TimestampLayout)))
				return
			}
		}
		if err != nil {
			c.fail(err)
			return
		}
		c.say(formatter.T(c.lang, formatter.MsgWorkStarted, formatter.FormatClock(ws.StartedAt)))

	case "stop":
		ws, err := app.Ledger.StopWork(ctx, app.UserID, now)
		if errors.Is(err, domain.ErrNoOpenSession) {
			c.say(formatter.T(c.lang, formatter.MsgNotWorking))
			return
		}
		if err != nil {
			c.fail(err)
			return
		}
		today, err := app.Ledger.HoursForDay(ctx, app.UserID, ws.StartedAt)
		if err != nil {
			c.fail(err)
			return
		}
		c.say(formatter.T(c.lang, formatter.MsgWorkStopped, formatter.FormatClock(*ws.EndedAt)))
		c.say(formatter.T(c.lang, formatter.MsgTodayWorked, today))

	case "summary":
		report, err := app.Reports.BuildMonthlyReport(ctx, app.UserID, domain.MonthOf(now))
		if err != nil {
			c.fail(err)
			return
		}
		c.say(formatter.FormatReportText(report, c.lang))
	}
}

func (c *chatSession) setLanguage(ctx context.Context, code string) {
	lang, err := domain.ParseLanguage(code)
	if err != nil {
		c.fail(err)
		return
	}
	if err := c.app.Profiles.SetLanguage(ctx, c.app.UserID, lang); err != nil {
		c.fail(err)
		return
	}
	c.lang = lang
	c.say(formatter.T(lang, formatter.MsgLanguageSet))
}

func (c *chatSession) submit(ctx context.Context, line string) {
	out, err := c.machine.Submit(line)
	if err != nil {
		var perr *dialog.ParseError
		if errors.As(err, &perr) {
			c.say(formatter.ParseErrorText(c.lang, perr.Kind))
			return
		}
		c.fail(err)
		return
	}

	app := c.app
	switch out.Kind {
	case dialog.OutcomeSetField:
		if _, err := app.Profiles.SetField(ctx, app.UserID, out.Field, out.Value); err != nil {
			c.fail(err)
			return
		}
		c.say(formatter.FieldSetText(c.lang, out.Field, out.Value))

	case dialog.OutcomeDaySelected:
		sessions, err := app.Ledger.SessionsForDay(ctx, app.UserID, out.Day)
		if err != nil {
			c.fail(err)
			return
		}
		c.say(formatter.FormatDaySessions(c.lang, out.Day, sessions))
		c.say(formatter.PromptText(c.lang, c.machine.Prompt()))

	case dialog.OutcomeRecordSession:
		if _, err := app.Ledger.RecordManualSession(ctx, app.UserID, out.Start, out.End); err != nil {
			c.fail(err)
			return
		}
		c.say(formatter.T(c.lang, formatter.MsgSessionSaved))
	}
}

func (c *chatSession) fail(err error) {
	if errors.Is(err, domain.ErrInvalidInterval) {
		c.say(formatter.T(c.lang, formatter.MsgInvalidInterval))
		return
	}
	c.say(formatter.StyleRed.Render("Error: ") + err.Error())
}
