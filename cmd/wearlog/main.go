package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wearlog/internal/bootstrap"
	alertdto "wearlog/internal/modules/alert/dto"
	profiledto "wearlog/internal/modules/profile/dto"
	trackingdto "wearlog/internal/modules/tracking/dto"
	"wearlog/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "wearlog",
		Short:         "Contraceptive device wear-time tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.wearlog)")

	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newDayCmd(&dataDir))
	root.AddCommand(newProfileCmd(&dataDir))
	root.AddCommand(newMethodCmd(&dataDir))
	root.AddCommand(newNotifyCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

var clockLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
}

func parseClock(value string) (time.Time, error) {
	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q, want e.g. 2006-01-02T15:04", value)
}

func parseDay(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse day %q, want 2006-01-02", value)
	}
	return t, nil
}

func printSession(cmd *cobra.Command, s trackingdto.SessionOutput) {
	end := "open"
	if !s.Open {
		end = s.End.Format("15:04")
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d\t%s %s - %s\t%s", s.ID,
		s.Start.Format("2006-01-02"), s.Start.Format("15:04"), end, s.Duration.Round(time.Minute))
	if s.UnprotectedSex {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), "\tunprotected-sex")
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Wearing session lifecycle"}

	var unprotected bool
	start := &cobra.Command{
		Use:   "start",
		Short: "Start wearing the device",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.TrackingCLI.Start(context.Background(), unprotected)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %d started at %s\n", out.ID, out.Start.Format("15:04"))
			return nil
		},
	}
	start.Flags().BoolVar(&unprotected, "unprotected", false, "flag the day as having unprotected sex")

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop wearing the device",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.TrackingCLI.Stop(context.Background())
			if err != nil {
				return err
			}
			for _, s := range out.Segments {
				printSession(cmd, s)
			}
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the open session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.TrackingCLI.Active(context.Background())
			if err != nil {
				return err
			}
			printSession(cmd, out)
			return nil
		},
	}

	var listDay string
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions of a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(listDay)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			sessions, err := app.TrackingCLI.ListDay(context.Background(), day)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				printSession(cmd, s)
			}
			return nil
		},
	}
	list.Flags().StringVar(&listDay, "day", "", "day to list (default today)")

	var editID int64
	var editStart, editEnd string
	var editUnprotected bool
	edit := &cobra.Command{
		Use:   "edit --id <id> --start <time> --end <time>",
		Short: "Correct a recorded session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if editID == 0 {
				return fmt.Errorf("--id is required")
			}
			startAt, err := parseClock(editStart)
			if err != nil {
				return err
			}
			endAt, err := parseClock(editEnd)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			segments, err := app.TrackingCLI.Edit(context.Background(), editID, startAt, endAt, editUnprotected)
			if err != nil {
				return err
			}
			for _, s := range segments {
				printSession(cmd, s)
			}
			return nil
		},
	}
	edit.Flags().Int64Var(&editID, "id", 0, "session id")
	edit.Flags().StringVar(&editStart, "start", "", "new start time")
	edit.Flags().StringVar(&editEnd, "end", "", "new end time")
	edit.Flags().BoolVar(&editUnprotected, "unprotected", false, "unprotected-sex flag")

	var deleteID int64
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a recorded session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if deleteID == 0 {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.TrackingCLI.Delete(context.Background(), deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %d deleted\n", deleteID)
			return nil
		},
	}
	deleteCmd.Flags().Int64Var(&deleteID, "id", 0, "session id")

	rollover := &cobra.Command{
		Use:   "rollover",
		Short: "Close a session left open past midnight and reopen it today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.TrackingCLI.Rollover(context.Background())
			if err != nil {
				return err
			}
			for _, s := range out.Closed {
				printSession(cmd, s)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reopened as session %d at %s\n",
				out.Reopened.ID, out.Reopened.Start.Format("2006-01-02 15:04"))
			return nil
		},
	}

	session.AddCommand(start, stop, status, list, edit, deleteCmd, rollover)
	return session
}

func newDayCmd(dataDir *string) *cobra.Command {
	var dayFlag string
	var markUnprotected, clearUnprotected bool
	day := &cobra.Command{
		Use:   "day",
		Short: "Show a day's wear time and objective status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dayAt, err := parseDay(dayFlag)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()

			if markUnprotected || clearUnprotected {
				count, err := app.TrackingCLI.MarkUnprotected(context.Background(), dayAt, markUnprotected)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "flag updated on %d session(s)\n", count)
			}

			out, err := app.TrackingCLI.DayStatus(context.Background(), dayAt)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "day: %s\n", out.Day.Format("2006-01-02"))
			for _, s := range out.Sessions {
				printSession(cmd, s)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total: %s\tstatus: %s\n", out.TotalWearing.Round(time.Minute), out.Status)
			if out.MethodID != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "method: %s\tobjective: %s", out.MethodID, out.ObjectiveMin)
				if !out.SingleTarget {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "-%s", out.ObjectiveMax)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "remaining: %s\treachability: %s", out.Remaining.Round(time.Minute), out.Reachability)
				if out.Slack > 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " (%s of slack)", out.Slack.Round(time.Minute))
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			if out.Unprotected {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "unprotected-sex flag set")
			}
			return nil
		},
	}
	day.Flags().StringVar(&dayFlag, "date", "", "day to inspect (default today)")
	day.Flags().BoolVar(&markUnprotected, "mark-unprotected", false, "set the unprotected-sex flag on the day")
	day.Flags().BoolVar(&clearUnprotected, "clear-unprotected", false, "clear the unprotected-sex flag on the day")
	day.MarkFlagsMutuallyExclusive("mark-unprotected", "clear-unprotected")
	return day
}

func newProfileCmd(dataDir *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "User profile commands"}

	var methodID, startedOn string
	initCmd := &cobra.Command{
		Use:   "init --method <id> --started-on <day>",
		Short: "Create the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(methodID) == "" {
				return fmt.Errorf("--method is required")
			}
			started, err := parseDay(startedOn)
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProfileCLI.Init(context.Background(), methodID, started)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile created: method=%s (%s) started=%s\n",
				out.MethodID, out.MethodName, out.StartedOn.Format("2006-01-02"))
			return nil
		},
	}
	initCmd.Flags().StringVar(&methodID, "method", "", "wearing method id")
	initCmd.Flags().StringVar(&startedOn, "started-on", "", "first day of contraception (default today)")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProfileCLI.Show(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "method: %s (%s)\nstarted: %s\n",
				out.MethodID, out.MethodName, out.StartedOn.Format("2006-01-02"))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notify imminent-miss=%t two-hours-left=%t min-reached=%t max-reached=%t max-extra-exceeded=%t\n",
				out.Prefs.ImminentMiss, out.Prefs.TwoHoursLeft, out.Prefs.MinReached, out.Prefs.MaxReached, out.Prefs.MaxExtraExceeded)
			return nil
		},
	}

	setMethod := &cobra.Command{
		Use:   "set-method <id>",
		Short: "Switch the wearing method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProfileCLI.SetMethod(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "method set to %s (%s)\n", out.MethodID, out.MethodName)
			return nil
		},
	}

	var prefFlags struct {
		imminentMiss, twoHoursLeft, minReached, maxReached, maxExtraExceeded bool
	}
	setPrefs := &cobra.Command{
		Use:   "set-prefs",
		Short: "Toggle notification preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			input := profiledto.SetPrefsInput{}
			pick := func(name string, value bool) *bool {
				if cmd.Flags().Changed(name) {
					return &value
				}
				return nil
			}
			input.ImminentMiss = pick("imminent-miss", prefFlags.imminentMiss)
			input.TwoHoursLeft = pick("two-hours-left", prefFlags.twoHoursLeft)
			input.MinReached = pick("min-reached", prefFlags.minReached)
			input.MaxReached = pick("max-reached", prefFlags.maxReached)
			input.MaxExtraExceeded = pick("max-extra-exceeded", prefFlags.maxExtraExceeded)
			out, err := app.ProfileCLI.SetPrefs(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notify imminent-miss=%t two-hours-left=%t min-reached=%t max-reached=%t max-extra-exceeded=%t\n",
				out.Prefs.ImminentMiss, out.Prefs.TwoHoursLeft, out.Prefs.MinReached, out.Prefs.MaxReached, out.Prefs.MaxExtraExceeded)
			return nil
		},
	}
	setPrefs.Flags().BoolVar(&prefFlags.imminentMiss, "imminent-miss", true, "notify shortly before the objective becomes unreachable")
	setPrefs.Flags().BoolVar(&prefFlags.twoHoursLeft, "two-hours-left", true, "notify when two hours of wear remain")
	setPrefs.Flags().BoolVar(&prefFlags.minReached, "min-reached", true, "notify when the objective is reached")
	setPrefs.Flags().BoolVar(&prefFlags.maxReached, "max-reached", true, "notify at the top of the comfort range")
	setPrefs.Flags().BoolVar(&prefFlags.maxExtraExceeded, "max-extra-exceeded", true, "notify when the maximum is exceeded")

	profile.AddCommand(initCmd, show, setMethod, setPrefs)
	return profile
}

func newMethodCmd(dataDir *string) *cobra.Command {
	method := &cobra.Command{Use: "method", Short: "Wearing method catalog"}
	method.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known wearing methods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			methods, err := app.ProfileCLI.Methods(context.Background())
			if err != nil {
				return err
			}
			for _, m := range methods {
				objective := m.Min.String()
				if !m.SingleTarget {
					objective = fmt.Sprintf("%s-%s", m.Min, m.Max)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tobjective=%s\tbounds=%s..%s\n",
					m.ID, m.Name, objective, m.MinExtra, m.MaxExtra)
			}
			return nil
		},
	})
	return method
}

func newNotifyCmd(dataDir *string) *cobra.Command {
	notify := &cobra.Command{Use: "notify", Short: "Notification engine"}

	notify.AddCommand(&cobra.Command{
		Use:   "poll",
		Short: "Run one notification decision tick",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AlertCLI.Poll(context.Background())
			if err != nil {
				return err
			}
			switch {
			case out.Skipped != "":
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s\n", out.Skipped)
			case out.Delivered:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "delivered %s: %s\n", out.Intent.Kind, out.Intent.Title)
			default:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to notify")
			}
			return nil
		},
	})

	var interval time.Duration
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Poll on an interval until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.AlertCLI.Watch(cmd.Context(), interval, func(out alertdto.PollOutput) {
				if out.Delivered {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "delivered %s: %s\n", out.Intent.Kind, out.Intent.Title)
				}
			})
		},
	}
	watch.Flags().DurationVar(&interval, "interval", 5*time.Minute, "poll interval")

	doctor := &cobra.Command{
		Use:   "doctor",
		Short: "Check the notifier delivery channel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AlertCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if !out.OK {
				return fmt.Errorf("notifier unreachable: %s", out.Error)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notifier %s %s reachable\n", out.Name, out.Version)
			return nil
		},
	}

	notify.AddCommand(watch, doctor)
	return notify
}
